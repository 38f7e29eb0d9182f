package validator

// ReservedWords is the mandatory reserved-word table: tokens excluded
// from enum variants because downstream generated code assumes them.
// checkEnums is its only consumer; identifiers such as field or entity
// names are not checked against it. The value is the suggested
// substitution surfaced in the diagnostic hint.
var ReservedWords = map[string]string{
	"create":    "add",
	"update":    "modify",
	"delete":    "remove",
	"email":     "mail",
	"submitted": "sent",
}
