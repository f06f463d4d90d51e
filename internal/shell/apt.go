package shell

import "fmt"

// DefaultPackages returns the descriptions apt install knows about.
func DefaultPackages() map[string]string {
	return map[string]string{
		"neofetch": "system information tool",
		"htop":     "interactive process viewer",
		"git":      "distributed version control",
		"nodejs":   "JavaScript runtime",
		"python3":  "Python language runtime",
	}
}

func (in *Interpreter) apt(args []string) ([]string, error) {
	if len(args) == 0 {
		return []string{"Usage: apt <command>"}, nil
	}

	switch sub := args[0]; sub {
	case "update":
		return []string{
			"Hit:1 https://archive.ubuntu-web stable InRelease",
			"Reading package lists... Done",
			"Building dependency tree... Done",
			"All packages are up to date.",
		}, nil
	case "install":
		if len(args) < 2 {
			return []string{"Usage: apt install <package>"}, nil
		}
		return in.aptInstall(args[1]), nil
	default:
		return []string{fmt.Sprintf("E: %s: command not implemented in simulator", sub)}, nil
	}
}

func (in *Interpreter) aptInstall(pkg string) []string {
	description, ok := in.packages[pkg]
	if !ok {
		description = "virtual package"
	}
	return []string{
		"Reading package lists... Done",
		"Building dependency tree... Done",
		"Reading state information... Done",
		"The following NEW packages will be installed:",
		"  " + pkg,
		"0 upgraded, 1 newly installed, 0 to remove and 0 not upgraded.",
		"Need to get 0 B of archives.",
		"After this operation, 0 B of additional disk space will be used.",
		fmt.Sprintf("Selecting previously unselected package %s.", pkg),
		"Preparing to unpack ...",
		fmt.Sprintf("Unpacking %s (simulated)...", pkg),
		fmt.Sprintf("Setting up %s (%s).", pkg, description),
		"Installation simulated successfully.",
	}
}
