// Package platform hides operating-system differences in file handling.
package platform
