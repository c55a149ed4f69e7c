package store

// migration upgrades a document from the schema version immediately
// below its index+1 to that version. Index 0 upgrades version 0 (the
// zero value, i.e. a pre-migration document) to version 1.
var migrations = []func(*Document){
	migrateToV1,
}

// migrateToV1 is a no-op today: version 1 is the shape Document
// started at. It exists so the migration-sequence mechanism itself is
// exercised, and so a future schema change has a worked example to
// follow (append migrateToV2 to the slice, bump currentSchemaVersion).
func migrateToV1(d *Document) {
	d.SchemaVersion = 1
}

// applyMigrations runs every migration whose version exceeds doc's
// current one, in order, mutating doc in place.
func applyMigrations(doc *Document) {
	for i, migrate := range migrations {
		version := i + 1
		if doc.SchemaVersion >= version {
			continue
		}
		migrate(doc)
	}
}
