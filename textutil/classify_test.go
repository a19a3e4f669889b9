package textutil_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sevigo/gochunk/textutil"
)

func TestIsMarkdown(t *testing.T) {
	assert.True(t, textutil.IsMarkdown("# Title\n\nSome prose."))
	assert.True(t, textutil.IsMarkdown("intro\n\n- item one\n- item two"))
	assert.True(t, textutil.IsMarkdown("```go\nfunc main() {}\n```"))
	assert.True(t, textutil.IsMarkdown("see [the docs](https://example.com) for details"))

	assert.False(t, textutil.IsMarkdown("Just a plain paragraph of text with nothing special."))
	assert.False(t, textutil.IsMarkdown(""))
}

func TestIsCodeLike(t *testing.T) {
	goSource := `func add(a, b int) int {
	return a + b
}

var total = 0
`
	assert.True(t, textutil.IsCodeLike(goSource))

	pySource := `def greet(name):
    print(name)

class Greeter:
    pass
`
	assert.True(t, textutil.IsCodeLike(pySource))

	prose := `The committee met on Tuesday to discuss the budget.
Attendance was higher than expected.
No decisions were made before lunch.
The meeting adjourned at noon.
`
	assert.False(t, textutil.IsCodeLike(prose))
}
