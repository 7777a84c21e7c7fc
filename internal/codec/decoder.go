package codec

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/fanyer/presto-sub061/internal/dataitem"
	"github.com/fanyer/presto-sub061/models"
)

// Response is a parsed server document.
type Response struct {
	// SyncState is the new cursor; valid only when HasSyncState is set.
	SyncState    string
	HasSyncState bool
	// Dirty is set when the server asks for a full reconciliation.
	Dirty   bool
	Version string

	ServerInfo models.ServerInfo

	// ErrorCode and ErrorMessage are taken from an <error> element, if any.
	ErrorCode    int
	HasError     bool
	ErrorMessage string

	Items []*dataitem.Item
	// Skipped counts item elements of unknown kinds.
	Skipped int
}

// SyncError maps the server error of the response to the error taxonomy.
func (r *Response) SyncError() models.SyncError {
	if !r.HasError {
		return models.SyncOK
	}
	return ServerErrorCode(r.ErrorCode)
}

// DecodeResponse parses a server document. Any syntax error is reported as
// ErrParse.
func DecodeResponse(r io.Reader) (*Response, error) {
	d := xml.NewDecoder(r)

	root, err := firstElement(d)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	if root.Name.Local != "link" {
		return nil, fmt.Errorf("%w: found <%s>", ErrNoLinkRoot, root.Name.Local)
	}

	resp := &Response{}
	for _, a := range root.Attr {
		switch a.Name.Local {
		case "syncstate":
			resp.SyncState, resp.HasSyncState = a.Value, true
		case "dirty":
			resp.Dirty = parseBool(a.Value)
		case "version":
			resp.Version = a.Value
		}
	}

	if err := decodeLink(d, resp); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return resp, nil
}

func firstElement(d *xml.Decoder) (xml.StartElement, error) {
	for {
		tok, err := d.Token()
		if err != nil {
			return xml.StartElement{}, err
		}
		if se, ok := tok.(xml.StartElement); ok {
			return se, nil
		}
	}
}

func decodeLink(d *xml.Decoder, resp *Response) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "server_info", "serverinfo":
				err = decodeServerInfo(d, resp)
			case "error":
				err = decodeError(d, t, resp)
			case "data":
				err = decodeData(d, resp)
			default:
				err = d.Skip()
			}
			if err != nil {
				return err
			}
		case xml.EndElement:
			return nil
		}
	}
}

func decodeServerInfo(d *xml.Decoder, resp *Response) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "error" {
				if err := decodeError(d, t, resp); err != nil {
					return err
				}
				continue
			}
			text, err := readText(d)
			if err != nil {
				return err
			}
			text = strings.TrimSpace(text)
			switch t.Name.Local {
			case "long_interval", "longinterval":
				resp.ServerInfo.LongInterval = parseSeconds(text)
			case "short_interval", "shortinterval":
				resp.ServerInfo.ShortInterval = parseSeconds(text)
			case "max_items", "maxitems":
				resp.ServerInfo.MaxItems, _ = strconv.Atoi(text)
			}
		case xml.EndElement:
			return nil
		}
	}
}

func decodeError(d *xml.Decoder, start xml.StartElement, resp *Response) error {
	text, err := readText(d)
	if err != nil {
		return err
	}
	resp.HasError = true
	resp.ErrorMessage = strings.TrimSpace(text)
	resp.ServerInfo.Error = resp.ErrorMessage
	for _, a := range start.Attr {
		if a.Name.Local == "code" {
			resp.ErrorCode, _ = strconv.Atoi(strings.TrimSpace(a.Value))
		}
	}
	return nil
}

func decodeData(d *xml.Decoder, resp *Response) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			kind, ok := models.ParseDataItemType(t.Name.Local)
			if !ok {
				resp.Skipped++
				if err := d.Skip(); err != nil {
					return err
				}
				continue
			}
			item, err := decodeItem(d, kind, t)
			if err != nil {
				return err
			}
			resp.Items = append(resp.Items, item)
		case xml.EndElement:
			return nil
		}
	}
}

func decodeItem(d *xml.Decoder, kind models.DataItemType, start xml.StartElement) (*dataitem.Item, error) {
	item := dataitem.New(kind, models.StatusNone)
	for _, a := range start.Attr {
		if a.Name.Space == "xmlns" || a.Name.Local == "xmlns" {
			continue
		}
		if a.Name.Local == "status" {
			item.Status = models.ParseItemStatus(a.Value)
			continue
		}
		item.SetAttribute(Expand(a.Name.Local), a.Value)
	}

	var content strings.Builder
loop:
	for {
		tok, err := d.Token()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			name := Expand(t.Name.Local)
			text, err := readText(d)
			if err != nil {
				return nil, err
			}
			if !PreserveWhitespace(name) {
				text = strings.TrimSpace(text)
			}
			item.SetChild(name, text)
		case xml.CharData:
			content.Write(t)
		case xml.EndElement:
			break loop
		}
	}

	if text := strings.TrimSpace(content.String()); text != "" {
		item.SetChild("", text)
	}
	if kind.IsSingleton() {
		if _, ok := item.Attribute("id"); !ok {
			item.SetAttribute("id", "0")
		}
	}

	key := kind.PrimaryKeyName()
	if value, ok := item.Lookup(key); ok && value != "" {
		if err := item.SetPrimaryKey(key, value); err != nil {
			return nil, err
		}
	}
	return item, nil
}

// readText returns the character data of the current element and consumes
// its end tag. Nested elements are skipped.
func readText(d *xml.Decoder) (string, error) {
	var sb strings.Builder
	for {
		tok, err := d.Token()
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.CharData:
			sb.Write(t)
		case xml.StartElement:
			if err := d.Skip(); err != nil {
				return "", err
			}
		case xml.EndElement:
			return sb.String(), nil
		}
	}
}

func parseBool(s string) bool {
	s = strings.TrimSpace(s)
	return s == "1" || strings.EqualFold(s, "true")
}

func parseSeconds(s string) time.Duration {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0
	}
	return time.Duration(n) * time.Second
}
