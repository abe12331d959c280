package metadata

import "github.com/veridict/veridict/internal/probe"

// NormalizeDocument maps an OOXML package property tree into canonical
// document metadata. The tree combines core and extended properties under
// their element names; anything missing stays absent.
func NormalizeDocument(kind DocumentKind, tree probe.Tree) *Document {
	m := &Document{Kind: kind}

	m.Creator = treeString(tree, "creator")
	m.LastModifiedBy = treeString(tree, "lastModifiedBy")
	m.Application = treeString(tree, "Application")
	m.AppVersion = treeString(tree, "AppVersion")
	m.Created = treeString(tree, "created")
	m.Modified = treeString(tree, "modified")
	m.LastPrinted = treeString(tree, "lastPrinted")
	m.Pages = treeInt(tree, "Pages")
	m.Slides = treeInt(tree, "Slides")
	m.Words = treeInt(tree, "Words")
	m.Revision = treeString(tree, "revision")
	m.Template = treeString(tree, "Template")
	m.Company = treeString(tree, "Company")

	return m
}
