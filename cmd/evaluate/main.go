// evaluate — консольный вычислитель выражений.
//
// Использование:
//
//	# локально, по выражению на аргумент
//	evaluate "2 + 3" "(2 + 3) * 4"
//
//	# выражения построчно из stdin
//	echo "15 / 3" | evaluate
//
//	# через gRPC сервера (результат попадает в историю пользователя)
//	evaluate --grpc localhost:9090 --token "$ACCESS_TOKEN" "1 / 3"
package main

import (
	"errors"
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errFailed) {
			fmt.Fprintln(os.Stderr, "evaluate:", err)
		}
		os.Exit(1)
	}
}
