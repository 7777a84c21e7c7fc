// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package codec reads and writes the XML documents exchanged with the sync
// server and stored in the disk queue files.
//
// Every document is rooted at <link>. Field names are shortened on the wire
// through a fixed alias table; see Obfuscate and Expand.
package codec

import (
	"encoding/xml"
	"io"

	"github.com/fanyer/presto-sub061/internal/dataitem"
	"github.com/fanyer/presto-sub061/models"
)

// ProtocolVersion is sent in the "version" attribute of every request.
const ProtocolVersion = "1.1"

// SupportsDecl is one <supports> entry of <client_info>.
type SupportsDecl struct {
	Name string
	// Target is the optional "target" attribute.
	Target string
	// BacklogSince asks for the backlog of a type whose cursor lags behind
	// the global one.
	BacklogSince string
}

// Request is the outgoing sync document.
type Request struct {
	SyncState string
	Dirty     bool
	Supports  []SupportsDecl
	Info      models.SystemInfo
	// Merge lists the datatypes for which the server is asked to merge its
	// copy with the items sent in this request.
	Merge []string
	Items []*dataitem.Item
}

// EncodeRequest writes req as an XML document.
func EncodeRequest(w io.Writer, req Request) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}

	state := req.SyncState
	if state == "" {
		state = models.DefaultSyncState
	}
	dirty := "0"
	if req.Dirty {
		dirty = "1"
	}

	tw := newTokenWriter(w)
	tw.start("link", attr("version", ProtocolVersion), attr("syncstate", state), attr("dirty", dirty))

	tw.start("client_info")
	for _, s := range req.Supports {
		var attrs []xml.Attr
		if s.Target != "" {
			attrs = append(attrs, attr("target", s.Target))
		}
		if s.BacklogSince != "" {
			attrs = append(attrs, attr("backlog_since", s.BacklogSince))
		}
		tw.start("supports", attrs...)
		tw.text(s.Name)
		tw.end("supports")
	}
	tw.element("build", req.Info.Build)
	tw.element("system", req.Info.System)
	tw.element("system_version", req.Info.SystemVersion)
	tw.element("product", req.Info.Product)
	tw.end("client_info")

	if len(req.Merge) > 0 {
		tw.start("actions")
		for _, datatype := range req.Merge {
			tw.start("merge", attr("datatype", datatype))
			tw.end("merge")
		}
		tw.end("actions")
	}

	tw.items(req.Items)
	tw.end("link")
	return tw.flush()
}

// tokenWriter keeps the first encoding error so documents can be written as
// a flat sequence of calls.
type tokenWriter struct {
	enc *xml.Encoder
	err error
}

func newTokenWriter(w io.Writer) *tokenWriter {
	return &tokenWriter{enc: xml.NewEncoder(w)}
}

func (tw *tokenWriter) token(t xml.Token) {
	if tw.err != nil {
		return
	}
	tw.err = tw.enc.EncodeToken(t)
}

func (tw *tokenWriter) start(name string, attrs ...xml.Attr) {
	tw.token(xml.StartElement{Name: xml.Name{Local: name}, Attr: attrs})
}

func (tw *tokenWriter) end(name string) {
	tw.token(xml.EndElement{Name: xml.Name{Local: name}})
}

func (tw *tokenWriter) text(s string) {
	if s == "" {
		return
	}
	tw.token(xml.CharData(s))
}

func (tw *tokenWriter) element(name, text string) {
	tw.start(name)
	tw.text(text)
	tw.end(name)
}

// items writes a <data> element holding one element per item.
func (tw *tokenWriter) items(items []*dataitem.Item) {
	tw.start("data")
	for _, item := range items {
		tw.item(item)
	}
	tw.end("data")
}

func (tw *tokenWriter) item(item *dataitem.Item) {
	name := item.Type.String()

	attrs := make([]xml.Attr, 0, len(item.Attributes())+1)
	if status := item.Status.String(); status != "" {
		attrs = append(attrs, attr("status", status))
	}
	for _, f := range item.Attributes() {
		attrs = append(attrs, attr(Obfuscate(f.Name), f.Value))
	}

	tw.start(name, attrs...)
	for _, f := range item.Children() {
		if f.Name == "" {
			// anonymous content
			tw.text(f.Value)
			continue
		}
		tw.element(Obfuscate(f.Name), f.Value)
	}
	tw.end(name)
}

func (tw *tokenWriter) flush() error {
	if tw.err != nil {
		return tw.err
	}
	return tw.enc.Flush()
}

func attr(name, value string) xml.Attr {
	return xml.Attr{Name: xml.Name{Local: name}, Value: value}
}
