package member

import "fmt"

// LockKey is the keylock key serializing mutations of one member's loans and subscriptions
func LockKey(memberID uint32) string {
	return fmt.Sprintf("member:%d", memberID)
}
