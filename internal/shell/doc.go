// Package shell implements the simulated command line that runs on top of the shared
// virtual filesystem.
//
// An Interpreter owns one Session (working directory, history, history cursor) and
// turns each input line into rendered Lines. Unknown verbs and failing handlers are
// reported as error lines; nothing a user types can stop the interpreter.
//
//	fs := vfs.New(vfs.DefaultSeed(), logger)
//	sh := shell.New(fs, shell.Config{Logger: logger})
//	for _, line := range sh.Execute(`cat "Desktop/Welcome.md"`) {
//		fmt.Println(line.Text)
//	}
package shell
