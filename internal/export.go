package internal

import (
	"fmt"
	"strings"
	"time"

	"currency-bot/models"
)

const exportTimeLayout = "2006-01-02 15:04:05"

// BuildUserExport renders all users as a tab-separated text blob with a
// header row. Empty names become a dash placeholder.
func BuildUserExport(users []models.User) []byte {
	var sb strings.Builder
	sb.WriteString("user_id\tusername\tfirst_name\tis_banned\tcreated_at")

	for _, user := range users {
		username := user.Username
		if username == "" {
			username = "-"
		}
		firstName := user.FirstName
		if firstName == "" {
			firstName = "-"
		}
		banned := 0
		if user.IsBanned {
			banned = 1
		}

		sb.WriteString(fmt.Sprintf(
			"\n%d\t%s\t%s\t%d\t%s",
			user.ID, username, firstName, banned, user.CreatedAt.Format(exportTimeLayout),
		))
	}

	return []byte(sb.String())
}

// ExportFileName builds a timestamped file name for an export snapshot
func ExportFileName(now time.Time) string {
	return fmt.Sprintf("users_%s.txt", now.Format("20060102_150405"))
}
