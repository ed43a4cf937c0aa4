package meetstore

import (
	"fmt"

	"github.com/cadencehq/cadence/schema"
)

// PrintStoreStatus prints meeting store status information.
func PrintStoreStatus(status schema.StoreStatus) {
	fmt.Printf("Store Backend: %s\n", status.Backend)
	fmt.Printf("Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	fmt.Printf("Meetings: %d\n", status.TotalMeetings)
	fmt.Printf("Contacts: %d\n", status.TotalContacts)
	fmt.Printf("Tasks: %d\n", status.TotalTasks)
	fmt.Printf("Import Runs: %d\n", status.TotalRuns)
	if status.TotalRuns > 0 {
		fmt.Printf("Last Import: %s\n", status.LastImportTime.Format("2006-01-02 15:04:05"))
	}
	fmt.Println("Table Sizes:")
	for table, size := range status.TableSizes {
		fmt.Printf("  %s: %d rows\n", table, size)
	}
}
