package i18n_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/flowbylang/flowby/internal/i18n"
)

func TestDefaultResolvesCanonicalKeys(t *testing.T) {
	r := i18n.Default()
	assert.Equal(t, `undefined variable "x"`, r.Resolve("semantic.undefined_variable", "x"))
	assert.Equal(t, "while loop exceeded 10000 iterations without terminating",
		r.Resolve("runtime.while_cap", 10000))
}

func TestCatalogOverridesTheEnglishMessage(t *testing.T) {
	r := i18n.Catalog{"runtime.division_by_zero": "nope: durch null geteilt"}
	assert.Equal(t, "nope: durch null geteilt", r.Resolve("runtime.division_by_zero"))
	// untouched keys still fall back to the built-in catalog
	assert.Equal(t, `key "k" not found`, r.Resolve("runtime.key_missing", "k"))
}

func TestUnknownKeyRendersTheKeyItself(t *testing.T) {
	r := i18n.Default()
	assert.Equal(t, "no.such.key", r.Resolve("no.such.key"))
	assert.Contains(t, r.Resolve("no.such.key", 1), "no.such.key")
}
