package codec

import (
	"encoding/xml"
	"errors"
	"io"

	"github.com/fanyer/presto-sub061/internal/dataitem"
)

// EncodeQueue writes items as a disk queue document:
// <link version="..."><data>...</data></link>.
func EncodeQueue(w io.Writer, items []*dataitem.Item) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	tw := newTokenWriter(w)
	tw.start("link", attr("version", ProtocolVersion))
	tw.items(items)
	tw.end("link")
	return tw.flush()
}

// DecodeQueue reads a disk queue document. An empty input yields no items.
func DecodeQueue(r io.Reader) ([]*dataitem.Item, error) {
	resp, err := DecodeResponse(r)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, err
	}
	return resp.Items, nil
}
