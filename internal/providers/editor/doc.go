// Package editor is the desktop's single text editor document.
//
// All reads and writes go through the shared filesystem. The editor watches
// filesystem events for its open file: an external write reloads a clean document
// and a removal marks the document detached until it is saved again. Terminal
// open/nano and the file browser hand files to the editor through Open.
package editor
