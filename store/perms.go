package store

// StaticPermissions is a rule-table Permissions implementation. The zero
// value grants everything; entries in the deny maps revoke individual
// capabilities. Real deployments supply their own Permissions, this one
// serves tests and single-user setups.
type StaticPermissions struct {
	DenyEdit      map[string]bool
	DenyDelete    map[string]bool
	DenyCreateAt  map[int]bool
	DenyFields    map[string]bool // "table:field"
	DenyLanguages map[int]bool
}

// CanEdit implements Permissions.
func (p *StaticPermissions) CanEdit(table string, row Row) bool {
	return !p.DenyEdit[table]
}

// CanDelete implements Permissions.
func (p *StaticPermissions) CanDelete(table string, row Row) bool {
	return !p.DenyDelete[table]
}

// CanCreateAt implements Permissions.
func (p *StaticPermissions) CanCreateAt(pageID int) bool {
	return !p.DenyCreateAt[pageID]
}

// CanEditField implements Permissions.
func (p *StaticPermissions) CanEditField(table, field string) bool {
	return !p.DenyFields[table+":"+field]
}

// CanAccessLanguage implements Permissions.
func (p *StaticPermissions) CanAccessLanguage(languageID int) bool {
	return !p.DenyLanguages[languageID]
}
