// Package version reports the tablekit build stamp.
package version
