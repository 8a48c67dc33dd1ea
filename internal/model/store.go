package model

// Store is the retail location everything else is scoped to.
type Store struct {
	BaseModel
	Name    string `db:"name" json:"name"`
	Address string `db:"address" json:"address"`
	Phone   string `db:"phone" json:"phone"`
	Email   string `db:"email" json:"email"`
	// BackupVersion is bumped on every local backup and compared on restore.
	BackupVersion int `db:"backup_version" json:"backupVersion"`
}
