// SPDX-License-Identifier: MPL-2.0

package nxplugin

type (
	// Transpiler prepares the process to load local plugins authored in a
	// language that needs compiling first. Register is called at most once
	// per Resolver.
	Transpiler interface {
		Register(root, configFile string)
	}

	// TranspilerFunc adapts a function to the Transpiler interface.
	TranspilerFunc func(root, configFile string)
)

// Register implements Transpiler.
func (f TranspilerFunc) Register(root, configFile string) { f(root, configFile) }

// NoopTranspiler is the default Transpiler. Go plugin implementations are
// compiled into the binary, so there is nothing to register.
var NoopTranspiler Transpiler = TranspilerFunc(func(string, string) {})
