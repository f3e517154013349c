// Package resources locates the files that riva128 keeps between sessions:
// the option ROM and the debugger's command history.
//
// JoinPath() turns a relative resource name into a usable path and creates
// any missing directories on the way. It never creates the file itself.
//
// The base of the path depends on the build. Binaries built with the
// "release" tag use a riva128 directory in the user's configuration
// directory, for example:
//
//	/home/user/.config/riva128/
//
// Other builds use a hidden directory in the current working directory:
//
//	.riva128
//
// # portable.txt
//
// If a file named 'portable.txt' is next to the program binary then all
// resources are kept in 'riva128_UserData', also next to the binary. This
// takes precedence over the build type.
package resources
