package service

import (
	"github.com/fanyer/presto-sub061/internal/dataitem"
	"github.com/fanyer/presto-sub061/models"
)

// MergeDirtySyncItems reconciles the complete local dataset with the
// complete server dataset of a dirty sync.
//
// missingOnServer holds what must be uploaded: local records the server
// does not know (deletions included) and merged records whose data differs
// from the server copy.
// missingOnClient holds what the local listeners must apply: server records
// without a local counterpart, server deletions, and merged records for
// which the server carried fields the local copy lacked.
//
// Local values win same-field conflicts. Both inputs are consumed.
func MergeDirtySyncItems(client, server *dataitem.Collection) (missingOnClient, missingOnServer *dataitem.Collection) {
	missingOnClient = dataitem.NewCollection()
	missingOnServer = dataitem.NewCollection()

	index := dataitem.NewHashedCollection()
	for _, item := range server.Items() {
		if !item.HasPrimaryKey() {
			continue
		}
		_ = index.AddItem(item)
	}

	for _, local := range client.Items() {
		remote := index.Find(local)
		if remote == nil {
			if local.Status == models.StatusNone {
				local.Status = models.StatusAdded
			}
			_ = missingOnServer.AddItem(local)
			continue
		}
		index.RemoveItem(remote)

		switch {
		case remote.Status == models.StatusDeleted && local.Status == models.StatusDeleted:
			local.Remove()
		case remote.Status == models.StatusDeleted, local.Status == models.StatusDeleted:
			// the server copy decides the record's fate on this device
			local.Remove()
			_ = missingOnClient.AddItem(remote)
		default:
			mergeRecord(local, remote, missingOnClient, missingOnServer)
		}
	}

	// whatever is left was never matched by a local record
	missingOnClient.AppendCollection(index)
	return missingOnClient, missingOnServer
}

func mergeRecord(local, remote *dataitem.Item, missingOnClient, missingOnServer *dataitem.Collection) {
	serverHasMore := hasFieldsMissingFrom(remote, local)

	merged := remote.Copy()
	status, err := merged.Merge(local.Copy())
	local.Remove()
	if err != nil {
		return
	}

	if status == dataitem.MergeMerged {
		upload := merged.Copy()
		upload.Status = models.StatusModified
		_ = missingOnServer.AddItem(upload)
	}
	if serverHasMore {
		merged.Status = models.StatusModified
		_ = missingOnClient.AddItem(merged)
	}
}

// hasFieldsMissingFrom reports whether a carries a field b does not have.
func hasFieldsMissingFrom(a, b *dataitem.Item) bool {
	for _, f := range a.Attributes() {
		if _, ok := b.Lookup(f.Name); !ok {
			return true
		}
	}
	for _, f := range a.Children() {
		if _, ok := b.Lookup(f.Name); !ok {
			return true
		}
	}
	return false
}
