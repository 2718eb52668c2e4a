package pipeline

// ToolingDevDependencies are added to every project: type checker, linter,
// test runner and cleanup helper.
func ToolingDevDependencies() []string {
	return []string{"typescript", "tslint", "ava", "rimraf"}
}

// ReactDependencies returns the runtime dependencies of the React preset.
func ReactDependencies(mobx bool) []string {
	state := "redux"
	if mobx {
		state = "mobx"
	}
	return []string{"react", "react-dom", "react-router", state}
}

// ReactDevDependencies returns the development dependencies of the React
// preset for the chosen bundler.
func ReactDevDependencies(parcel bool) []string {
	deps := []string{"@types/react", "@types/react-dom", "@types/react-router", "bulma"}
	if parcel {
		return append(deps, ParcelDevDependencies()...)
	}
	return append(deps, WebpackDevDependencies()...)
}

// ParcelDevDependencies is the parcel toolchain.
func ParcelDevDependencies() []string {
	return []string{"parcel-bundler"}
}

// WebpackDevDependencies is the webpack toolchain with its loaders and plugins.
func WebpackDevDependencies() []string {
	return []string{
		"webpack",
		"webpack-cli",
		"webpack-dev-server",
		"ts-loader",
		"css-loader",
		"sass-loader",
		"sass",
		"mini-css-extract-plugin",
		"copy-webpack-plugin",
	}
}

// BundlerScripts returns the build, serve and clean scripts for the bundler.
func BundlerScripts(parcel bool) map[string]string {
	if parcel {
		return map[string]string{
			"build": "parcel build static/index.html --out-dir dist",
			"serve": "parcel static/index.html",
			"clean": "rimraf dist .cache",
		}
	}
	return map[string]string{
		"build": "webpack --config webpack.config.js",
		"serve": "webpack-dev-server --config webpack.config.js --open",
		"clean": "rimraf dist",
	}
}
