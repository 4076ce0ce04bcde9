package id

import "github.com/rs/xid"

// GetXid returns a 20 character globally unique, k-sortable id.
func GetXid() string {
	return xid.New().String()
}
