package models

// Key enumerates the record fields callers can set through the item commit
// contract. Each key has a canonical field name; the wire alias lives in
// the codec.
type Key int

const (
	KeyNone Key = iota
	KeyID
	KeyCreated
	KeyDescription
	KeyIcon
	KeyNickname
	KeyPanelPos
	KeyParent
	KeyPersonalBarPos
	KeyPrevious
	KeyShowInPanel
	KeyShowInPersonalBar
	KeyTitle
	KeyURI
	KeyVisited
	KeyType
	KeyDeletable
	KeyMaxItems
	KeyMoveIsCopy
	KeySeparatorsAllowed
	KeySubFoldersAllowed
	KeyTarget
	KeyAuthor
	KeyExtensionUpdateURI
	KeyVersion
	KeyLastRead
	KeyUpdateInterval
	KeyContent
	KeyFormData
	KeyFormURL
	KeyModified
	KeyPageURL
	KeyPassword
	KeyScope
	KeyTopdocURL
	KeyUsername
	KeyEncoding
	KeyGroup
	KeyHidden
	KeyIsPost
	KeyKey
	KeyPostQuery
	KeyCustomTitle
	KeyExtensionID
	KeyPartnerID
	KeyPosition
	KeyReloadEnabled
	KeyReloadInterval
	KeyReloadOnlyIfExpired
	KeyReloadPolicy
	KeyLastTyped
	KeyThumbnail

	keyCount
)

var keyNames = [keyCount]string{
	KeyNone:                "",
	KeyID:                  "id",
	KeyCreated:             "created",
	KeyDescription:         "description",
	KeyIcon:                "icon",
	KeyNickname:            "nickname",
	KeyPanelPos:            "panel_pos",
	KeyParent:              "parent",
	KeyPersonalBarPos:      "personal_bar_pos",
	KeyPrevious:            "previous",
	KeyShowInPanel:         "show_in_panel",
	KeyShowInPersonalBar:   "show_in_personal_bar",
	KeyTitle:               "title",
	KeyURI:                 "uri",
	KeyVisited:             "visited",
	KeyType:                "type",
	KeyDeletable:           "deletable",
	KeyMaxItems:            "max_items",
	KeyMoveIsCopy:          "move_is_copy",
	KeySeparatorsAllowed:   "separators_allowed",
	KeySubFoldersAllowed:   "sub_folders_allowed",
	KeyTarget:              "target",
	KeyAuthor:              "author",
	KeyExtensionUpdateURI:  "extension_update_uri",
	KeyVersion:             "version",
	KeyLastRead:            "last_read",
	KeyUpdateInterval:      "update_interval",
	KeyContent:             "content",
	KeyFormData:            "form_data",
	KeyFormURL:             "form_url",
	KeyModified:            "modified",
	KeyPageURL:             "page_url",
	KeyPassword:            "password",
	KeyScope:               "scope",
	KeyTopdocURL:           "topdoc_url",
	KeyUsername:            "username",
	KeyEncoding:            "encoding",
	KeyGroup:               "group",
	KeyHidden:              "hidden",
	KeyIsPost:              "is_post",
	KeyKey:                 "key",
	KeyPostQuery:           "post_query",
	KeyCustomTitle:         "custom_title",
	KeyExtensionID:         "extension_id",
	KeyPartnerID:           "partner_id",
	KeyPosition:            "position",
	KeyReloadEnabled:       "reload_enabled",
	KeyReloadInterval:      "reload_interval",
	KeyReloadOnlyIfExpired: "reload_only_if_expired",
	KeyReloadPolicy:        "reload_policy",
	KeyLastTyped:           "last_typed",
	KeyThumbnail:           "thumbnail",
}

// Name returns the canonical field name of k.
func (k Key) Name() string {
	if k < 0 || k >= keyCount {
		return ""
	}
	return keyNames[k]
}

// KeyByName resolves a canonical field name.
func KeyByName(name string) (Key, bool) {
	for k := KeyID; k < keyCount; k++ {
		if keyNames[k] == name {
			return k, true
		}
	}
	return KeyNone, false
}
