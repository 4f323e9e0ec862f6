package mealplan

import (
	"reflect"

	"github.com/poiesic/mealplan/storage/directory"
)

// DetectDirectoryAccess reports whether host can hand out user-granted
// directories. It is a pure type check and never calls into host.
func DetectDirectoryAccess(host any) (directory.Access, bool) {
	if host == nil {
		return nil, false
	}
	access, ok := host.(directory.Access)
	if !ok {
		return nil, false
	}
	if v := reflect.ValueOf(host); v.Kind() == reflect.Pointer && v.IsNil() {
		return nil, false
	}
	return access, true
}
