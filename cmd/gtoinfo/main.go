// Inspection tool for GTO files
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/gatgui/gto/gto"
)

func main() {
	find := flag.String("find", "", "only list properties whose name matches this pattern")
	values := flag.Bool("data", false, "print property values")
	useMmap := flag.Bool("mmap", false, "memory-map the file")
	verbose := flag.Bool("v", false, "log reader activity to stderr")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: gtoinfo [-find pattern] [-data] [-mmap] [-v] <file.gto>")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	opts := []gto.Option{gto.WithMode(gto.RandomAccess), gto.WithMmap(*useMmap)}
	if *verbose {
		opts = append(opts, gto.WithLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))))
	}

	filename := flag.Arg(0)
	r := gto.NewReader(opts...)
	if err := r.Open(filename); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Failed to open file: %v\n", err)
		os.Exit(1)
	}
	defer r.Close()

	fmt.Printf("=== %s ===\n", filename)
	fmt.Printf("Version:     %d\n", r.Version())
	fmt.Printf("Byte order:  %s\n", byteOrder(r.IsSwapped()))
	fmt.Printf("Compression: %s\n", r.Compression())
	fmt.Printf("Digest:      %s\n", r.Digest())
	fmt.Printf("Entities:    %d objects, %d components, %d properties\n\n",
		r.NumObjects(), r.NumComponents(), r.NumProperties())

	var err error
	if *find != "" {
		err = findProperties(r, *find, *values)
	} else {
		err = printTree(r, *values)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
}

func byteOrder(swapped bool) string {
	if swapped {
		return "big-endian"
	}
	return "little-endian"
}

func printTree(r *gto.Reader, values bool) error {
	return r.Walk(func(path string, level gto.Level, h gto.Handle) error {
		switch level {
		case gto.LevelObject:
			o, err := r.ObjectAt(h)
			if err != nil {
				return err
			}
			fmt.Printf("Object %q (%s v%d)\n", o.Name, o.Protocol, o.ProtocolVersion)
		case gto.LevelComponent:
			c, err := r.ComponentAt(h)
			if err != nil {
				return err
			}
			fmt.Printf("  Component %q", c.Name)
			if c.Interpretation != "" {
				fmt.Printf(" as %q", c.Interpretation)
			}
			if c.IsMatrix() {
				fmt.Print(" [matrix]")
			}
			if c.IsTransposed() {
				fmt.Print(" [transposed]")
			}
			fmt.Println()
		case gto.LevelProperty:
			return printProperty(r, h, "    ", values)
		}
		return nil
	})
}

func findProperties(r *gto.Reader, pattern string, values bool) error {
	objects, err := r.Objects()
	if err != nil {
		return err
	}
	for _, o := range objects {
		comps, err := r.ComponentsOf(o.Handle)
		if err != nil {
			return err
		}
		for _, c := range comps {
			props, err := r.FindProperties(o.Name, c.Name, pattern)
			if err != nil {
				return err
			}
			for _, p := range props {
				fmt.Printf("%s\n", gto.JoinPath(o.Name, c.Name, p.Name))
				if err := printProperty(r, p.Handle, "  ", values); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func printProperty(r *gto.Reader, h gto.Handle, indent string, values bool) error {
	p, err := r.PropertyAt(h)
	if err != nil {
		return err
	}
	fmt.Printf("%sProperty %q: %s[%d] x %d", indent, p.Name, p.Type, p.Width, p.Count)
	if p.Interpretation != "" {
		fmt.Printf(" as %q", p.Interpretation)
	}
	fmt.Println()
	if !values {
		return nil
	}

	d, err := r.AccessProperty(h)
	if err != nil {
		fmt.Printf("%s  ERROR reading data: %v\n", indent, err)
		return nil
	}
	fmt.Printf("%s  %v\n", indent, d.Values())
	return nil
}
