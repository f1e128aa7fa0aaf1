package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"gopkg.in/yaml.v3"

	"github.com/semmidev/azwebapp/internal/domain"
)

func TestParseFormat(t *testing.T) {
	Convey("ParseFormat", t, func() {
		f, err := ParseFormat(" YAML ")
		So(err, ShouldBeNil)
		So(f, ShouldEqual, FormatYAML)

		f, err = ParseFormat("")
		So(err, ShouldBeNil)
		So(f, ShouldEqual, FormatJSON)

		_, err = ParseFormat("xml")
		So(err, ShouldNotBeNil)
		So(err.Error(), ShouldContainSubstring, "xml")
	})
}

func TestPrinter(t *testing.T) {
	Convey("Given a backup item", t, func() {
		created := time.Date(2026, 5, 6, 7, 8, 9, 0, time.UTC)
		item := &domain.BackupItem{
			ID:        "/subscriptions/s/resourceGroups/rg1/providers/Microsoft.Web/sites/app1/backups/3",
			BackupID:  3,
			BlobName:  "app1.zip",
			Status:    domain.BackupStatusInProgress,
			Created:   &created,
			Databases: []domain.DatabaseBackupSetting{{DatabaseType: "SqlAzure", Name: "orders"}},
		}
		var buf bytes.Buffer

		Convey("When printing JSON", func() {
			So(NewPrinter(&buf, FormatJSON).Print(item), ShouldBeNil)

			Convey("It should round trip to the same item", func() {
				var decoded domain.BackupItem
				So(json.Unmarshal(buf.Bytes(), &decoded), ShouldBeNil)
				So(decoded.BackupID, ShouldEqual, 3)
				So(decoded.Status, ShouldEqual, domain.BackupStatusInProgress)
				So(decoded.Databases, ShouldResemble, item.Databases)
				So(buf.String(), ShouldContainSubstring, "\n  \"backupId\": 3")
			})
		})

		Convey("When printing YAML", func() {
			So(NewPrinter(&buf, FormatYAML).Print(item), ShouldBeNil)

			Convey("It should use the same field names", func() {
				var decoded map[string]interface{}
				So(yaml.Unmarshal(buf.Bytes(), &decoded), ShouldBeNil)
				So(decoded["backupId"], ShouldEqual, 3)
				So(decoded["blobName"], ShouldEqual, "app1.zip")
				So(decoded["status"], ShouldEqual, "InProgress")
			})
		})

		Convey("When printing a table", func() {
			So(NewPrinter(&buf, FormatTable).Print(item), ShouldBeNil)

			Convey("It should print a header and one row", func() {
				lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
				So(lines, ShouldHaveLength, 2)
				So(lines[0], ShouldStartWith, "BACKUP ID")
				So(lines[1], ShouldContainSubstring, "InProgress")
				So(lines[1], ShouldContainSubstring, "2026-05-06T07:08:09Z")
				So(strings.Fields(lines[1])[1], ShouldEqual, "-")
			})
		})
	})
}
