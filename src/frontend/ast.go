// Package frontend lowers a parsed SysY AST into the ir package's typed,
// basic-block structured IR (spec §4), and parses that AST in the first
// place (SPEC_FULL §A.2: the lexer/parser is "assumed to deliver a
// well-formed AST" by spec.md, but a real CLI needs one).
//
// The grammar below is a direct, non-left-recursive transcription of spec
// §6.2's EBNF: each binary-expression precedence level (LOrExp/LAndExp/
// EqExp/RelExp/AddExp/MulExp) is a Head/Tail pair instead of a recursive
// left operand, the same technique vslc's recursive-descent parser uses
// structurally and kanso's participle grammar uses literally for its binary
// expressions.
package frontend

// CompUnit is the root of a SysY translation unit: an ordered sequence of
// global declarations and function definitions (spec §3.1).
type CompUnit struct {
	Items []*GlobalItem `@@*`
}

// GlobalItem is either a global Decl or a FuncDef. FuncDef is tried first:
// it differs from a Decl at the third token ("(" after BType IDENT), which
// participle's bounded lookahead resolves without needing true backtracking.
type GlobalItem struct {
	Func *FuncDef `  @@`
	Decl *Decl    `| @@`
}

// Decl is a constant or variable declaration (spec §4.1/§4.2).
type Decl struct {
	Const *ConstDecl `  @@`
	Var   *VarDecl   `| @@`
}

// ConstDecl declares one or more compile-time constants, each evaluated via
// the constant evaluator (spec §4.1).
type ConstDecl struct {
	Type string      `"const" @"int"`
	Defs []*ConstDef `@@ { "," @@ } ";"`
}

// ConstDef is a single `IDENT {"[" ConstExp "]"} "=" ConstInitVal`.
type ConstDef struct {
	Name  string       `@Ident`
	Dims  []*ConstExp  `{ "[" @@ "]" }`
	Init  *ConstInitVal `"=" @@`
}

// ConstInitVal is either a constant scalar expression or a braced,
// possibly-nested list of them (spec §4.2's Initializer source shape).
type ConstInitVal struct {
	Exp  *ConstExp       `  @@`
	List []*ConstInitVal `| "{" [ @@ { "," @@ } ] "}"`
}

// ConstExp is a constant expression; syntactically identical to Exp, it is
// distinguished only by requiring constant-evaluability (spec §4.1).
type ConstExp struct {
	Exp *Exp `@@`
}

// VarDecl declares one or more (optionally initialized) variables.
type VarDecl struct {
	Type string    `@"int"`
	Defs []*VarDef `@@ { "," @@ } ";"`
}

// VarDef is `IDENT {"[" ConstExp "]"} ["=" InitVal]`.
type VarDef struct {
	Name string     `@Ident`
	Dims []*ConstExp `{ "[" @@ "]" }`
	Init *InitVal   `[ "=" @@ ]`
}

// InitVal mirrors ConstInitVal but allows runtime expressions (spec §4.2).
type InitVal struct {
	Exp  *Exp       `  @@`
	List []*InitVal `| "{" [ @@ { "," @@ } ] "}"`
}

// FuncDef is `FuncType IDENT "(" [FuncFParams] ")" Block` (spec §4.6).
type FuncDef struct {
	RetType string         `@("void" | "int")`
	Name    string         `@Ident "("`
	Params  []*FuncFParam  `[ @@ { "," @@ } ] ")"`
	Body    *Block         `@@`
}

// FuncFParam is `BType IDENT ["[" "]" {"[" ConstExp "]"}]`: a scalar int
// parameter, or an array parameter that has decayed its first dimension to
// a pointer (spec §4.6/§4.4).
type FuncFParam struct {
	Type  string          `@"int"`
	Name  string          `@Ident`
	Array *FParamArraySuf `[ @@ ]`
}

// FParamArraySuf is the `"[" "]" {"[" ConstExp "]"}` tail marking an array
// parameter; Dims holds the dimensions after the decayed first one.
type FParamArraySuf struct {
	Dims []*ConstExp `"[" "]" { "[" @@ "]" }`
}

// Block is a brace-delimited sequence of declarations and statements
// (spec §3.3's lexical scope unit).
type Block struct {
	Items []*BlockItem `"{" @@* "}"`
}

// BlockItem is a Decl or Stmt.
type BlockItem struct {
	Decl *Decl `  @@`
	Stmt *Stmt `| @@`
}

// Stmt covers every statement form in spec §4.5.
type Stmt struct {
	Block    *Block    `  @@`
	If       *IfStmt   `| @@`
	While    *WhileStmt `| @@`
	Break    bool      `| @"break" ";"`
	Continue bool      `| @"continue" ";"`
	Return   *RetStmt  `| @@`
	Assign   *AssignStmt `| @@`
	ExpStmt  *ExpStmt  `| @@`
}

// IfStmt is `"if" "(" Exp ")" Stmt ["else" Stmt]`, dangling-else resolved
// by participle's greedy optional matching the nearest preceding if, same
// as a hand-written recursive-descent parser.
type IfStmt struct {
	Cond *Exp  `"if" "(" @@ ")"`
	Then *Stmt `@@`
	Else *Stmt `[ "else" @@ ]`
}

// WhileStmt is `"while" "(" Exp ")" Stmt`.
type WhileStmt struct {
	Cond *Exp  `"while" "(" @@ ")"`
	Body *Stmt `@@`
}

// RetStmt is `"return" [Exp] ";"`.
type RetStmt struct {
	Exp *Exp `"return" [ @@ ] ";"`
}

// AssignStmt is `LVal "=" Exp ";"`. Tried before ExpStmt since both can
// start with an identifier; the "=" after LVal disambiguates.
type AssignStmt struct {
	LVal *LVal `@@ "="`
	Exp  *Exp  `@@ ";"`
}

// ExpStmt is `[Exp] ";"`, the expression-statement / empty-statement form.
type ExpStmt struct {
	Exp *Exp `[ @@ ] ";"`
}

// LVal is `IDENT {"[" Exp "]"}` (spec §4.4).
type LVal struct {
	Name string `@Ident`
	Idx  []*Exp `{ "[" @@ "]" }`
}

// Exp is `LOrExp` (spec §6.2: `Exp ::= LOrExp`): the full logical/
// relational/arithmetic tower, used uniformly for array dimensions, call
// arguments, assignment right-hand sides, and if/while conditions alike.
type Exp struct {
	Or *LOrExp `@@`
}

// LOrExp ::= LAndExp { "||" LAndExp }
type LOrExp struct {
	Head *LAndExp   `@@`
	Tail []*LAndExp `{ "||" @@ }`
}

// LAndExp ::= EqExp { "&&" EqExp }
type LAndExp struct {
	Head *EqExp   `@@`
	Tail []*EqExp `{ "&&" @@ }`
}

// EqExp ::= RelExp { ("==" | "!=") RelExp }
type EqExp struct {
	Head *RelExp    `@@`
	Tail []*EqTail  `{ @@ }`
}

type EqTail struct {
	Op  string  `@("==" | "!=")`
	Exp *RelExp `@@`
}

// RelExp ::= AddExp { ("<" | ">" | "<=" | ">=") AddExp }
type RelExp struct {
	Head *AddExp    `@@`
	Tail []*RelTail `{ @@ }`
}

type RelTail struct {
	Op  string  `@("<=" | ">=" | "<" | ">")`
	Exp *AddExp `@@`
}

// AddExp ::= MulExp { ("+" | "-") MulExp }
type AddExp struct {
	Head *MulExp    `@@`
	Tail []*AddTail `{ @@ }`
}

type AddTail struct {
	Op  string  `@("+" | "-")`
	Exp *MulExp `@@`
}

// MulExp ::= UnaryExp { ("*" | "/" | "%") UnaryExp }
type MulExp struct {
	Head *UnaryExp  `@@`
	Tail []*MulTail `{ @@ }`
}

type MulTail struct {
	Op  string    `@("*" | "/" | "%")`
	Exp *UnaryExp `@@`
}

// UnaryExp ::= PrimaryExp | IDENT "(" [FuncRParams] ")" | UnaryOp UnaryExp
type UnaryExp struct {
	Unary   *UnaryOpExp `  @@`
	Call    *CallExp    `| @@`
	Primary *PrimaryExp `| @@`
}

// UnaryOpExp is `UnaryOp UnaryExp`.
type UnaryOpExp struct {
	Op      string    `@("+" | "-" | "!")`
	Operand *UnaryExp `@@`
}

// CallExp is `IDENT "(" [Exp {"," Exp}] ")"`, tried before a bare PrimaryExp
// identifier lookup since both start with Ident.
type CallExp struct {
	Name string `@Ident "("`
	Args []*Exp `[ @@ { "," @@ } ] ")"`
}

// PrimaryExp ::= "(" Exp ")" | LVal | Number
type PrimaryExp struct {
	Paren  *Exp    `  "(" @@ ")"`
	LVal   *LVal   `| @@`
	Number *string `| @Int`
}
