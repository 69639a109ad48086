package test

import (
	"fmt"
	"math/rand"
	"strings"
)

const validTokens = "fun;main;var;for;while;if;else;print;return;and;or;nil;true;false;(;);{;};,;?;:;\"this is a string\";\"this is a longer string containing a bunch of text: Lorem ipsum dolor sit amet, consectetur adipiscing elit, sed do eiusmod tempor incididunt ut labore et dolore magna aliqua.\";\"\";+;-;*;/;!;!=;=;==;<;<=;>;>=;123;3.25;counter;_tmp;//comment\n;\n"

func GetRandomTokens(size int) string {
	return GetRandomTokensWithSep(size, " ")
}

func GetRandomTokensWithSep(size int, sep string) string {
	valid := strings.Split(validTokens, ";")
	// Splitting on ';' loses the semicolon token itself
	valid = append(valid, ";")

	var toks []string
	for len(toks) < size {
		toks = append(toks, valid[rand.Intn(len(valid))])
	}

	return strings.Join(toks, sep)
}

// GetCountingProgram returns a program that sums the numbers below n with a
// for loop and prints the result.
func GetCountingProgram(n int) string {
	return fmt.Sprintf("var sum = 0;\nfor (var i = 0; i < %d; i = i + 1) {\n  sum = sum + i;\n}\nprint sum;\n", n)
}
