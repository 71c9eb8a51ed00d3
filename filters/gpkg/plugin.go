package gpkg

import (
	"database/sql"
	"fmt"

	"github.com/c360/geoio/errors"
	"github.com/c360/geoio/filter"
)

// Plugin exposes the SQLite filter through the plugin surface, together
// with a "gpkg-info" command verb.
type Plugin struct{}

// Filters implements filter.IOPlugin.
func (Plugin) Filters() []filter.Filter {
	return []filter.Filter{New()}
}

// RegisterCommands implements filter.IOPlugin.
func (Plugin) RegisterCommands(cmd filter.CommandLine) error {
	return cmd.RegisterCommand("gpkg-info", runInfo)
}

// runInfo prints the point count of every database given on the command
// line.
func runInfo(args []string) error {
	if len(args) == 0 {
		return errors.New(errors.CodeBadArgument, "gpkg-info: no database given")
	}
	for _, path := range args {
		count, err := countPoints(path)
		if err != nil {
			return err
		}
		fmt.Printf("%s: %d points\n", path, count)
	}
	return nil
}

func countPoints(path string) (int64, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return 0, errors.WrapCoded(errors.CodeThirdPartyLibFailure, err, "GpkgPlugin", "Info", "open database")
	}
	defer db.Close()

	var count int64
	if err := db.QueryRow("SELECT COUNT(*) FROM points").Scan(&count); err != nil {
		return 0, errors.WrapCoded(errors.CodeWrongFileType, err, "GpkgPlugin", "Info", "count points")
	}
	return count, nil
}
