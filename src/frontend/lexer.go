package frontend

import "github.com/alecthomas/participle/v2/lexer"

// sysyLexer is the token set for spec §6.2's EBNF, grounded on
// kanso/grammar/lexer.go's stateful-regex-rule style.
var sysyLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{Name: "Comment", Pattern: `//[^\n]*|/\*([^*]|\*[^/])*\*/`, Action: nil},
		{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`, Action: nil},
		{Name: "Int", Pattern: `0[xX][0-9a-fA-F]+|0[0-7]*|[1-9][0-9]*`, Action: nil},
		{Name: "Operator", Pattern: `==|!=|<=|>=|&&|\|\||[+\-*/%=<>!]`, Action: nil},
		{Name: "Punct", Pattern: `[(){}\[\],;]`, Action: nil},
		{Name: "Whitespace", Pattern: `[ \t\r\n]+`, Action: nil},
	},
})
