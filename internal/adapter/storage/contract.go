package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
)

// RequiredSchemaVersion is the migration version the repositories are
// written against.
const RequiredSchemaVersion = 2

var ErrSchemaMismatch = errors.New("database schema mismatch")

// contract lists the columns each table must expose.
var contract = map[string][]string{
	"categories": {
		"categoryid", "categoryname", "categoryicon", "status", "user_admin",
		"created_at", "updated_at",
	},
	"subcategories": {
		"subcategoryid", "categoryid", "subcategoryname", "subcategoryicon",
		"status", "user_admin", "created_at", "updated_at",
	},
	"brands": {
		"brandid", "categoryid", "subcategoryid", "brandname", "brandicon",
		"status", "user_admin", "created_at", "updated_at",
	},
	"products": {
		"productid", "categoryid", "subcategoryid", "brandid", "productname",
		"productdescription", "picture", "status", "user_admin",
		"created_at", "updated_at",
	},
	"productdetails": {
		"productdetailid", "categoryid", "subcategoryid", "brandid",
		"productid", "productdetailname", "weight", "weighttype",
		"packagingtype", "noofqty", "stock", "price", "offerprice",
		"offertype", "productstatus", "productdetaildescription", "picture",
		"user_admin", "created_at", "updated_at",
	},
	"productpictures": {
		"id", "categoryid", "subcategoryid", "brandid", "productid",
		"productdetailid", "filenames", "user_admin", "created_at", "updated_at",
	},
	"mainbanner": {
		"id", "title", "description", "status", "filenames",
		"created_at", "updated_at",
	},
	"adoffers": {
		"id", "categoryid", "subcategoryid", "brandid", "productid", "status",
		"filenames", "created_at", "updated_at",
	},
	"bankandotheroffers": {
		"id", "title", "description", "offer_type", "status", "valid_until",
		"filenames", "created_at", "updated_at",
	},
	"admins": {
		"id", "name", "emailid", "mobileno", "password", "status",
		"created_at", "updated_at",
	},
	"userdata": {
		"userid", "firstname", "lastname", "gender", "emailaddress", "dob",
		"mobileno", "createdat", "updatedat",
	},
	"useraddress": {
		"id", "userid", "pincode", "houseno", "floorno", "towerno",
		"building", "address", "landmark", "city", "state",
	},
	"orders": {
		"id", "orderno", "orderdate", "userid", "productdetailsid", "quantity",
		"amount", "paymentstatus", "deliverystatus", "mobileno",
		"emailaddress", "address", "username",
	},
}

type columnRow struct {
	Table  string `db:"table_name"`
	Column string `db:"column_name"`
}

type versionRow struct {
	Version int64 `db:"version"`
	Dirty   bool  `db:"dirty"`
}

// VerifySchema fails when migrations are behind or dirty, or when a table
// or column the repositories rely on is missing.
func (s Storage) VerifySchema(ctx context.Context) error {
	const op = "Storage.VerifySchema"
	log := slog.With("op", op)

	v, err := getOne[versionRow](ctx, s, op,
		`SELECT version, dirty FROM schema_migrations LIMIT 1;`)
	if err != nil {
		return fmt.Errorf("%s: %w: migrations are not applied: %w",
			op, ErrSchemaMismatch, err)
	}
	if v.Dirty {
		return fmt.Errorf("%s: %w: migration version %d is dirty",
			op, ErrSchemaMismatch, v.Version)
	}
	if v.Version < RequiredSchemaVersion {
		return fmt.Errorf("%s: %w: version %d, required %d",
			op, ErrSchemaMismatch, v.Version, RequiredSchemaVersion)
	}

	tables := make([]string, 0, len(contract))
	for t := range contract {
		tables = append(tables, t)
	}
	rows, err := selectAll[columnRow](ctx, s, op, `
		SELECT table_name, column_name
		FROM information_schema.columns
		WHERE table_schema = current_schema() AND table_name = ANY($1);`,
		tables)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if missing := missingColumns(contract, rows); len(missing) != 0 {
		return fmt.Errorf("%s: %w: missing %s",
			op, ErrSchemaMismatch, strings.Join(missing, ", "))
	}

	log.Info("database schema verified", "version", v.Version)
	return nil
}

// missingColumns returns sorted "table" or "table.column" entries absent
// from present.
func missingColumns(want map[string][]string, present []columnRow) []string {
	have := make(map[string]map[string]bool)
	for _, r := range present {
		if have[r.Table] == nil {
			have[r.Table] = make(map[string]bool)
		}
		have[r.Table][r.Column] = true
	}

	var missing []string
	for table, cols := range want {
		tc, ok := have[table]
		if !ok {
			missing = append(missing, table)
			continue
		}
		for _, c := range cols {
			if !tc[c] {
				missing = append(missing, table+"."+c)
			}
		}
	}
	slices.Sort(missing)
	return missing
}
