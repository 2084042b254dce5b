// Package buildsys produces the configure, build and install commands that
// run inside a fetched checkout.
//
// Autotools is the default system: ./configure --prefix, make, make install,
// each logging to a per-package file in the build directory. A custom_install
// option replaces all three with a single command.
package buildsys
