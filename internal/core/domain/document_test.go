package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDocumentType_IsLocal(t *testing.T) {
	assert.True(t, TypePDF.IsLocal())
	assert.True(t, TypeSlides.IsLocal())
	assert.True(t, TypeWord.IsLocal())
	assert.True(t, TypeText.IsLocal())
	assert.False(t, TypeWeb.IsLocal())
}

func TestDocument_TotalCharacters(t *testing.T) {
	doc := Document{
		Name: "manual.pdf",
		Type: TypePDF,
		Pages: []Page{
			{Number: 1, Text: "hello"},
			{Number: 2, Text: "world!"},
		},
	}
	assert.Equal(t, 11, doc.TotalCharacters())

	empty := Document{}
	assert.Equal(t, 0, empty.TotalCharacters())
}
