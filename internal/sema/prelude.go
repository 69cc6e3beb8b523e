package sema

// builtinPrelude lists the names every file sees without importing anything.
// They live in their own scope above the file scope, so user declarations
// shadow them instead of conflicting.
func builtinPrelude() []string {
	return []string{
		"assert",
		"require",
		"revert",
		"log",
	}
}
