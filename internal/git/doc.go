// Package git inspects the repository that hosts the documented project.
//
// docops never mutates the repository; publishing goes through the external
// versioning tool. This package only answers two questions:
//   - where is the project root (the work tree containing the start directory)
//   - which commit is checked out (logged with each deploy)
package git
