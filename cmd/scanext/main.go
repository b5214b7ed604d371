// Command scanext scans the local machine for installed browser extensions
// and flags the ones requesting risky permissions.
package main

func main() {
	Execute()
}
