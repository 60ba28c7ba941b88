// Package report renders recipes and shopping lists for people.
//
// Writer is the output boundary: the markdown writer produces the
// recipe documents and checklist-style shopping lists saved to disk,
// the simple writer produces plain text for the terminal. FormatEntry
// and FormatRecord render single ingredient lines ("3 cups flour",
// "a pinch salt") shared by both.
package report
