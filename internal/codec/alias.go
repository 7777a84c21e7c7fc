package codec

// field describes how a canonical field name travels on the wire.
type field struct {
	canonical string
	wire      string
	attribute bool
	keepSpace bool
}

var fieldTable = []field{
	{canonical: "id", wire: "uuid", attribute: true},
	{canonical: "created", wire: "cre", attribute: true},
	{canonical: "description", wire: "desc", keepSpace: true},
	{canonical: "icon", wire: "image"},
	{canonical: "nickname", wire: "shortname"},
	{canonical: "panel_pos", wire: "ppos"},
	{canonical: "parent", wire: "par", attribute: true},
	{canonical: "personal_bar_pos", wire: "pbpos"},
	{canonical: "previous", wire: "prev", attribute: true},
	{canonical: "show_in_panel", wire: "show_ip"},
	{canonical: "show_in_personal_bar", wire: "show_ipb"},
	{canonical: "title", wire: "name"},
	{canonical: "uri", wire: "link"},
	{canonical: "visited", wire: "vis", attribute: true},
	{canonical: "type", wire: "type", attribute: true},
	{canonical: "deletable", wire: "del", attribute: true},
	{canonical: "max_items", wire: "max", attribute: true},
	{canonical: "move_is_copy", wire: "mic", attribute: true},
	{canonical: "separators_allowed", wire: "sa", attribute: true},
	{canonical: "sub_folders_allowed", wire: "sfa", attribute: true},
	{canonical: "target", wire: "target", attribute: true},
	{canonical: "author", wire: "author"},
	{canonical: "extension_update_uri", wire: "ext_upd_uri"},
	{canonical: "version", wire: "ver", attribute: true},
	{canonical: "last_read", wire: "lastread"},
	{canonical: "update_interval", wire: "updint"},
	{canonical: "content", wire: "text", keepSpace: true},
	{canonical: "form_data", wire: "fdat"},
	{canonical: "form_url", wire: "furl"},
	{canonical: "modified", wire: "mdf", attribute: true},
	{canonical: "page_url", wire: "purl"},
	{canonical: "password", wire: "pwd"},
	{canonical: "scope", wire: "scp", attribute: true},
	{canonical: "topdoc_url", wire: "turl"},
	{canonical: "username", wire: "usr"},
	{canonical: "encoding", wire: "enc"},
	{canonical: "group", wire: "grp"},
	{canonical: "hidden", wire: "hdn"},
	{canonical: "is_post", wire: "ispost"},
	{canonical: "key", wire: "key"},
	{canonical: "post_query", wire: "post"},
	{canonical: "custom_title", wire: "cst_ttl"},
	{canonical: "extension_id", wire: "ext_id"},
	{canonical: "partner_id", wire: "prtnrid", attribute: true},
	{canonical: "position", wire: "pos", attribute: true},
	{canonical: "reload_enabled", wire: "rle"},
	{canonical: "reload_interval", wire: "rli"},
	{canonical: "reload_only_if_expired", wire: "rloie"},
	{canonical: "reload_policy", wire: "rlp"},
	{canonical: "last_typed", wire: "typed"},
	{canonical: "thumbnail", wire: "thumb"},
}

var (
	byCanonical = make(map[string]field, len(fieldTable))
	byWire      = make(map[string]field, len(fieldTable))
)

func init() {
	for _, f := range fieldTable {
		byCanonical[f.canonical] = f
		byWire[f.wire] = f
	}
}

// Obfuscate returns the wire alias of a canonical field name. Unknown names
// are returned unchanged.
func Obfuscate(name string) string {
	if f, ok := byCanonical[name]; ok {
		return f.wire
	}
	return name
}

// Expand returns the canonical name of a wire alias. Unknown names are
// returned unchanged.
func Expand(wire string) string {
	if f, ok := byWire[wire]; ok {
		return f.canonical
	}
	return wire
}

// IsAttribute reports whether a canonical field travels as an XML attribute
// rather than a child element.
func IsAttribute(name string) bool {
	return byCanonical[name].attribute
}

// PreserveWhitespace reports whether the text of a canonical field is kept
// verbatim when parsed.
func PreserveWhitespace(name string) bool {
	return byCanonical[name].keepSpace
}
