package catalog

import "fmt"

// InventoryLockKey is the keylock key serializing counter updates of one (book, branch) pair
func InventoryLockKey(bookID, branchID uint32) string {
	return fmt.Sprintf("inventory:%d:%d", bookID, branchID)
}
