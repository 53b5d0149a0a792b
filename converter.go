package homespace

// Converter converts HTML to Markdown. Legal-document text is stored as
// markdown so successive versions diff cleanly.
type Converter interface {
	Convert(html string) (string, error)
}
