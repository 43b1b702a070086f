package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"

	"exprCalc/internal/api/grpc/calculator"
	"exprCalc/internal/evaluator"
)

// errFailed — хотя бы одно выражение не вычислилось; сами ошибки уже напечатаны.
var errFailed = errors.New("some expressions failed")

type options struct {
	compute  bool
	grpcAddr string
	token    string
	timeout  time.Duration
}

// evalFunc вычисляет одно выражение и возвращает результат строкой.
type evalFunc func(ctx context.Context, expr string) (string, error)

func newRootCmd() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:   "evaluate [expression...]",
		Short: "Evaluate arithmetic expressions",
		Long: `Evaluates infix expressions over decimal numbers with + - * / and parentheses.

Each argument is one expression. Without arguments expressions are read from stdin,
one per line. Results go to stdout, errors to stderr as "<expression>: <Kind>: <message>".`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			eval, closeFn, err := opts.evaluator()
			if err != nil {
				return err
			}
			defer closeFn()
			return run(cmd.Context(), eval, args, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.Flags().BoolVar(&opts.compute, "compute", false, "skip the static validator: a lone number is accepted")
	cmd.Flags().StringVar(&opts.grpcAddr, "grpc", "", "evaluate on a server via gRPC (host:port)")
	cmd.Flags().StringVar(&opts.token, "token", "", "access token for --grpc")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 5*time.Second, "per-expression timeout for --grpc")
	return cmd
}

// evaluator выбирает способ вычисления по флагам.
func (o options) evaluator() (evalFunc, func(), error) {
	if o.grpcAddr == "" {
		fn := evaluator.Evaluate
		if o.compute {
			fn = evaluator.Compute
		}
		return func(_ context.Context, expr string) (string, error) {
			n, err := fn(expr)
			if err != nil {
				return "", err
			}
			return n.String(), nil
		}, func() {}, nil
	}

	if o.compute {
		return nil, nil, errors.New("--compute is local only")
	}
	if o.token == "" {
		return nil, nil, errors.New("--token is required with --grpc")
	}
	conn, err := grpc.NewClient(o.grpcAddr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, nil, fmt.Errorf("grpc dial: %w", err)
	}
	client := calculator.NewClient(conn)
	return func(ctx context.Context, expr string) (string, error) {
		ctx, cancel := context.WithTimeout(calculator.WithToken(ctx, o.token), o.timeout)
		defer cancel()
		resp, err := client.Calculate(ctx, expr)
		if err != nil {
			return "", errors.New(status.Convert(err).Message())
		}
		return resp.GetFields()["result"].GetStringValue(), nil
	}, func() { _ = conn.Close() }, nil
}

// run вычисляет выражения из args, а без них — построчно из in. Пустые строки stdin пропускаются.
func run(ctx context.Context, eval evalFunc, args []string, in io.Reader, out, errOut io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	failed := false
	handle := func(expr string) {
		res, err := eval(ctx, expr)
		if err != nil {
			failed = true
			fmt.Fprintf(errOut, "%s: %v\n", expr, err)
			return
		}
		fmt.Fprintln(out, res)
	}

	if len(args) > 0 {
		for _, a := range args {
			handle(a)
		}
	} else {
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			line := sc.Text()
			if strings.TrimSpace(line) == "" {
				continue
			}
			handle(line)
		}
		if err := sc.Err(); err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
	}

	if failed {
		return errFailed
	}
	return nil
}
