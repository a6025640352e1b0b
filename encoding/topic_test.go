package encoding

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTopicNameValidation(t *testing.T) {
	valid := []string{
		"/abc/def",
		"abc/def",
		"abc",
		"/",
		"//",
	}
	for _, s := range valid {
		name, err := NewTopicName(s)
		assert.NoError(t, err, "topic name %q", s)
		assert.Equal(t, s, name.String())
	}

	invalid := []string{
		"#",
		"+",
		"/+",
		"/#",
		"abc/\x00",
		"abc\x00def",
		"abc#def",
		"abc+def",
	}
	for _, s := range invalid {
		_, err := NewTopicName(s)
		assert.ErrorIs(t, err, ErrInvalidTopicName, "topic name %q", s)
	}
}

func TestTopicFilterValidation(t *testing.T) {
	valid := []string{
		"abc/def",
		"abc/+",
		"abc/#",
		"#",
		"+",
		"+/",
		"+/+",
		"///",
		"//+/",
		"//abc/",
		"//+//#",
		"/abc/+//#",
		"+/abc/+",
	}
	for _, s := range valid {
		filter, err := NewTopicFilter(s)
		assert.NoError(t, err, "topic filter %q", s)
		assert.Equal(t, s, filter.String())
	}

	invalid := []string{
		"abc\x00def",
		"abc/\x00def",
		"++",
		"++/",
		"/++",
		"abc/++",
		"abc/++/",
		"#/abc",
		"/ab#",
		"##",
		"/abc/ab#",
		"/+#",
		"//+#",
		"/abc/+#",
		"xxx/abc/+#",
		"xxx/a+bc/",
		"x+x/abc/",
		"x+/abc/",
		"+x/abc/",
		"+/abc/++",
		"+/a+c/+",
	}
	for _, s := range invalid {
		_, err := NewTopicFilter(s)
		assert.ErrorIs(t, err, ErrInvalidTopicFilter, "topic filter %q", s)
	}
}

func TestValidateUTF8(t *testing.T) {
	assert.NoError(t, ValidateUTF8([]byte("hello")))
	assert.NoError(t, ValidateUTF8([]byte{}))
	assert.NoError(t, ValidateUTF8([]byte("héllo wörld")))
	assert.ErrorIs(t, ValidateUTF8([]byte{0xFF, 0xFC}), ErrInvalidString)
	assert.ErrorIs(t, ValidateUTF8([]byte{0xC0, 0x80}), ErrInvalidString)
}
