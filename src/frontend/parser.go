package frontend

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/fatih/color"
)

var sysyParser = participle.MustBuild[CompUnit](
	participle.Lexer(sysyLexer),
	participle.Elide("Whitespace", "Comment"),
	participle.UseLookahead(4),
)

// Parse parses SysY source into a CompUnit, satisfying the ParseFailure
// error kind (spec §7) on syntax errors. Grounded on
// kanso/grammar/parser.go's ParseFile/reportParseError pattern.
func Parse(filename, src string) (*CompUnit, error) {
	cu, err := sysyParser.ParseString(filename, src)
	if err != nil {
		msg := reportParseError(src, err)
		return nil, &CompileError{Kind: ParseFailure, Msg: msg, Cause: err}
	}
	return cu, nil
}

// reportParseError renders a caret-style, colourised diagnostic and returns
// its plain-text form for CompileError.Error.
func reportParseError(src string, err error) string {
	pe, ok := err.(participle.Error)
	if !ok {
		color.Red("unexpected error: %s", err)
		return err.Error()
	}

	pos := pe.Position()
	lines := strings.Split(src, "\n")
	if pos.Line <= 0 || pos.Line > len(lines) {
		color.Red("syntax error at unknown location: %s", err)
		return err.Error()
	}

	line := lines[pos.Line-1]
	caret := strings.Repeat(" ", max(pos.Column-1, 0)) + "^"

	color.Red("syntax error in %s at line %d, column %d:", pos.Filename, pos.Line, pos.Column)
	fmt.Println(line)
	color.HiRed(caret)
	fmt.Printf("-> %s\n", pe.Message())

	return fmt.Sprintf("%s:%d:%d: %s", pos.Filename, pos.Line, pos.Column, pe.Message())
}
