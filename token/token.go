// Package token defines the lexical tokens produced by the DAZZLE
// lexer and consumed by the parser.
package token

import "github.com/dazzle-lang/dazzle/ir"

// Kind identifies a token's lexical category.
type Kind int

const (
	EOF Kind = iota
	IDENT
	STRING
	NUMBER
	LBRACK
	RBRACK
	LPAREN
	RPAREN
	COLON
	COMMA
	EQUALS
	ARROW // ->
	DOT
	STAR
	NEWLINE
	INDENT
	DEDENT

	// Operators used only inside expressions; kept distinct from
	// keyword tokens so the parser's Pratt loop can switch on Kind
	// without re-checking Literal text.
	NOT_EQ // !=
	LT
	LTE
	GT
	GTE
	PLUS
	MINUS
	SLASH

	keywordStart
	KW_MODULE
	KW_USE
	KW_APP
	KW_ENTITY
	KW_SURFACE
	KW_WORKSPACE
	KW_PERSONA
	KW_SCENARIO
	KW_SECTION
	KW_FIELD
	KW_USES
	KW_MODE
	KW_REF
	KW_HAS_MANY
	KW_BELONGS_TO
	KW_ENUM
	KW_PK
	KW_REQUIRED
	KW_OPTIONAL
	KW_UNIQUE
	KW_AUTO_ADD
	KW_AUTO_UPDATE
	KW_COMPUTED
	KW_TRANSITIONS
	KW_INVARIANT
	KW_PERMIT
	KW_FORBID
	KW_AUDIT
	KW_ROLE
	KW_AUTHENTICATED
	KW_LLM_MODEL
	KW_LLM_INTENT
	KW_LLM_CONFIG
	KW_EVENT
	KW_SUBSCRIBE
	KW_TOPIC
	KW_PROCESS
	KW_SCHEDULE
	KW_STEP
	KW_TRIGGER
	KW_ON
	KW_WHEN
	KW_AND
	KW_OR
	KW_NOT
	KW_TRUE
	KW_FALSE
	KW_NULL
	KW_INTENT
	KW_DOMAIN
	KW_PATTERNS
	KW_ARCHETYPE
	KW_INDEX
	KW_REQUIRES
	keywordEnd
)

// Keywords maps lower-case source spellings to their Kind. Keywords
// are not reserved outside their declaration-level contexts: the
// parser's disambiguation layer accepts a keyword-shaped IDENT token
// in expression/value/field-name positions.
var Keywords = map[string]Kind{
	"module":        KW_MODULE,
	"use":           KW_USE,
	"app":           KW_APP,
	"entity":        KW_ENTITY,
	"surface":       KW_SURFACE,
	"workspace":     KW_WORKSPACE,
	"persona":       KW_PERSONA,
	"scenario":      KW_SCENARIO,
	"section":       KW_SECTION,
	"field":         KW_FIELD,
	"uses":          KW_USES,
	"mode":          KW_MODE,
	"ref":           KW_REF,
	"has_many":      KW_HAS_MANY,
	"belongs_to":    KW_BELONGS_TO,
	"enum":          KW_ENUM,
	"pk":            KW_PK,
	"required":      KW_REQUIRED,
	"optional":      KW_OPTIONAL,
	"unique":        KW_UNIQUE,
	"auto_add":      KW_AUTO_ADD,
	"auto_update":   KW_AUTO_UPDATE,
	"computed":      KW_COMPUTED,
	"transitions":   KW_TRANSITIONS,
	"invariant":     KW_INVARIANT,
	"permit":        KW_PERMIT,
	"forbid":        KW_FORBID,
	"audit":         KW_AUDIT,
	"role":          KW_ROLE,
	"authenticated": KW_AUTHENTICATED,
	"llm_model":     KW_LLM_MODEL,
	"llm_intent":    KW_LLM_INTENT,
	"llm_config":    KW_LLM_CONFIG,
	"event":         KW_EVENT,
	"subscribe":     KW_SUBSCRIBE,
	"topic":         KW_TOPIC,
	"process":       KW_PROCESS,
	"schedule":      KW_SCHEDULE,
	"step":          KW_STEP,
	"trigger":       KW_TRIGGER,
	"on":            KW_ON,
	"when":          KW_WHEN,
	"and":           KW_AND,
	"or":            KW_OR,
	"not":           KW_NOT,
	"true":          KW_TRUE,
	"false":         KW_FALSE,
	"null":          KW_NULL,
	"intent":        KW_INTENT,
	"domain":        KW_DOMAIN,
	"patterns":      KW_PATTERNS,
	"archetype":     KW_ARCHETYPE,
	"index":         KW_INDEX,
	"requires":      KW_REQUIRES,
}

// IsKeyword reports whether k is one of the fixed keyword kinds.
func IsKeyword(k Kind) bool { return k > keywordStart && k < keywordEnd }

var names = map[Kind]string{
	EOF: "EOF", IDENT: "IDENT", STRING: "STRING", NUMBER: "NUMBER",
	LBRACK: "[", RBRACK: "]", LPAREN: "(",
	RPAREN: ")", COLON: ":", COMMA: ",", EQUALS: "=", ARROW: "->",
	DOT: ".", STAR: "*", NEWLINE: "NEWLINE", INDENT: "INDENT",
	DEDENT: "DEDENT", NOT_EQ: "!=", LT: "<", LTE: "<=", GT: ">",
	GTE: ">=", PLUS: "+", MINUS: "-", SLASH: "/",
}

// String renders a Kind for diagnostics ("expected one of: …").
func (k Kind) String() string {
	if s, ok := names[k]; ok {
		return s
	}
	for text, kind := range Keywords {
		if kind == k {
			return text
		}
	}
	return "UNKNOWN"
}

// Token is one lexical unit with its source location and literal text.
type Token struct {
	Kind    Kind
	Literal string
	Loc     ir.Location

	// NumValue and StrValue hold the decoded form for NUMBER/STRING
	// tokens (escapes already processed for STRING); Literal keeps
	// the raw source spelling for diagnostics.
	NumValue float64
	IsDecimal bool // NUMBER token contained a '.'
	StrValue string
}
