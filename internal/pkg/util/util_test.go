package util

import (
	"Journaly/internal/api/dto"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseIDs(t *testing.T) {
	ids, ok := ParseIDs("3, 5,8")
	assert.True(t, ok)
	assert.Equal(t, []uint64{3, 5, 8}, ids)

	_, ok = ParseIDs("")
	assert.False(t, ok)
	_, ok = ParseIDs("3,x")
	assert.False(t, ok)
	_, ok = ParseIDs("0")
	assert.False(t, ok)
}

func TestStrToUint64(t *testing.T) {
	assert.Equal(t, uint64(42), StrToUint64(" 42 "))
	assert.Equal(t, uint64(0), StrToUint64("-1"))
}

func TestValidateDTO(t *testing.T) {
	ok := &dto.ThreadCreateDTO{PostID: 1, StartIndex: 2, EndIndex: 5, HighlightedContent: "hola"}
	assert.NoError(t, ValidateDTO(ok))

	reversed := &dto.ThreadCreateDTO{PostID: 1, StartIndex: 5, EndIndex: 2, HighlightedContent: "hola"}
	err := ValidateDTO(reversed)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "end_index")
	assert.Contains(t, err.Error(), "gtefield=StartIndex")

	empty := &dto.ThreadCreateDTO{PostID: 1}
	assert.Error(t, ValidateDTO(empty))
}
