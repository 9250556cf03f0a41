package manual

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"text/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/ardnew/santa/pkg"
)

//go:embed manual.md.tmpl
var source string

var document = template.Must(template.New("manual").Parse(source))

// page is the data a manual edition is rendered from.
type page struct {
	Version   string
	Milestone Milestone
}

// Reached reports whether the edition's milestone is at or past the one
// named.
func (p page) Reached(name string) bool {
	var m Milestone
	if m.UnmarshalText([]byte(name)) != nil {
		return false
	}

	return p.Milestone >= m
}

// Version returns the language version at milestone m: the major and minor
// components of the release with m as the patch.
func Version(m Milestone) string {
	code := VersionCode(m)

	return fmt.Sprintf("%d.%d.%d", code/10000, code/100%100, code%100)
}

// VersionCode packs [Version] the way [pkg.VersionCode] does.
func VersionCode(m Milestone) int64 {
	return pkg.VersionCode()/100*100 + int64(m)
}

// Markdown writes the manual edition for milestone m.
func Markdown(w io.Writer, m Milestone) error {
	if !m.valid() {
		return ErrMilestone.Wrap(fmt.Errorf("%d", int(m)))
	}

	if err := document.Execute(w, page{Version: Version(m), Milestone: m}); err != nil {
		return ErrDocument.Wrap(err)
	}

	return nil
}

// HTML writes the manual edition for milestone m as an HTML fragment.
func HTML(w io.Writer, m Milestone) error {
	var md bytes.Buffer
	if err := Markdown(&md, m); err != nil {
		return err
	}

	conv := goldmark.New(goldmark.WithExtensions(extension.GFM))
	if err := conv.Convert(md.Bytes(), w); err != nil {
		return ErrDocument.Wrap(err)
	}

	return nil
}
