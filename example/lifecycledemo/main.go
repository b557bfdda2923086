// Command lifecycledemo exercises the full bootstrap lifecycle: flag
// parsing and logger setup, running every registered initializer, doing a
// trivial unit of work, then running every finalizer and exit callback in
// reverse/append order respectively.
package main

import (
	"fmt"
	"os"

	"github.com/gottingen/melon-sub003/bootstrap"
	_ "github.com/gottingen/melon-sub003/runtimetune"
	_ "github.com/gottingen/melon-sub003/threadindex"
)

var _ = bootstrap.Register(func() {
	fmt.Println("lifecycledemo: starting up")
}, func() {
	fmt.Println("lifecycledemo: shutting down")
})

func main() {
	if err := bootstrap.BootstrapInit(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	bootstrap.RunBootstrap()
	defer bootstrap.RunFinalizers()

	bootstrap.PushExitCallback(func() {
		fmt.Println("lifecycledemo: final exit callback")
	})

	fmt.Println("lifecycledemo: running")
}
