// Package mdhtml converts Markdown to indented HTML.
//
// Conversion runs in two stages. Lex splits a document into a tree of
// tokens: block rules first, in fixed precedence, then inline rules inside
// each block. Link reference definitions are collected per block scope and
// resolved against enclosing scopes. Render walks the tree and emits one
// element per line, nesting children two spaces deeper than their parent.
// Code blocks are passed to a Highlighter; the default uses chroma.
//
// Example:
//
//	out, err := mdhtml.HTML("# Hello\n\nMarkdown *in*, HTML out.\n")
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(out)
//
// Convert and HTTPConvert wrap HTML for whole documents: they read from a
// reader or URL, reject binary input and strip a leading front matter
// header.
package mdhtml
