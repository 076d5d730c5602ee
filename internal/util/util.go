package util

import (
	"fmt"
	"strings"

	"github.com/gofrs/uuid"
	"github.com/hashicorp/go-multierror"
)

// FormatMultiError formats multierrors for logging
func FormatMultiError(merrs []error) string {
	if len(merrs) == 1 {
		return merrs[0].Error()
	}
	var msg strings.Builder
	fmt.Fprintf(&msg, "%d errors occurred:\n", len(merrs))
	for i := 0; i < len(merrs); i++ {
		fmt.Fprintf(&msg, "\t* %+v\n", merrs[i])
	}
	return msg.String()
}

// AppendError accumulates err into merr, formatting the result with FormatMultiError
func AppendError(merr *multierror.Error, err error) *multierror.Error {
	if err == nil {
		return merr
	}
	merr = multierror.Append(merr, err)
	merr.ErrorFormat = FormatMultiError
	return merr
}

// NewIteratorID produces an identifier used to correlate log messages for a single iterator
func NewIteratorID() string {
	id, err := uuid.NewV4()
	if err != nil {
		return "unknown"
	}
	return id.String()
}
