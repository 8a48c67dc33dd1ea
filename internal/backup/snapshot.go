package backup

import "github.com/fekuna/omnipos-local/internal/model"

// Snapshot is the full local dataset as written to a backup file. Audits are
// not part of it.
type Snapshot struct {
	Stores         []model.Store         `json:"stores"`
	Products       []model.Product       `json:"products"`
	Sales          []model.Sale          `json:"sales"`
	RecentSearches []model.RecentSearch  `json:"recentSearches"`
	Categories     []model.Category      `json:"categories"`
	Customers      []model.Customer      `json:"customers"`
	Users          []model.User          `json:"users"`
	Suppliers      []model.Supplier      `json:"suppliers"`
	PurchaseOrders []model.PurchaseOrder `json:"purchaseOrders"`
}

// BackupVersion is the highest store backup version in the snapshot.
func (s *Snapshot) BackupVersion() int {
	v := 0
	for _, st := range s.Stores {
		if st.BackupVersion > v {
			v = st.BackupVersion
		}
	}
	return v
}
