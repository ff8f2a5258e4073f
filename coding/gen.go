//go:build ignore

package main

import (
	"bufio"
	"fmt"
	"os"
)

// tables from qrencode-3.1.1/qrspec.c, versions 1 to 6

var capacity = [7]struct {
	width     int
	words     int
	remainder int
	ec        [4]int
}{
	{0, 0, 0, [4]int{0, 0, 0, 0}},
	{21, 26, 0, [4]int{7, 10, 13, 17}}, // 1
	{25, 44, 7, [4]int{10, 16, 22, 28}},
	{29, 70, 7, [4]int{15, 26, 36, 44}},
	{33, 100, 7, [4]int{20, 36, 52, 64}},
	{37, 134, 7, [4]int{26, 48, 72, 88}}, // 5
	{41, 172, 7, [4]int{36, 64, 96, 112}},
}

// Number of blocks in the two block groups.
var eccTable = [7][4][2]int{
	{{0, 0}, {0, 0}, {0, 0}, {0, 0}},
	{{1, 0}, {1, 0}, {1, 0}, {1, 0}}, // 1
	{{1, 0}, {1, 0}, {1, 0}, {1, 0}},
	{{1, 0}, {1, 0}, {2, 0}, {2, 0}},
	{{1, 0}, {2, 0}, {2, 0}, {4, 0}},
	{{1, 0}, {2, 0}, {2, 2}, {2, 2}}, // 5
	{{2, 0}, {4, 0}, {4, 0}, {4, 0}},
}

// Alignment box centres other than 6.
var align = [7]int{0, 0, 18, 22, 26, 30, 34}

func calcFormat(fb uint16) uint16 {
	const formatPoly = 0x537
	rem := fb
	for i := 4; i >= 0; i-- {
		if rem&((1<<10)<<i) != 0 {
			rem ^= formatPoly << i
		}
	}
	return fb | rem
}

func main() {
	w := bufio.NewWriter(os.Stdout)
	fmt.Fprint(w, `// generated by go run gen.go | gofmt; DO NOT EDIT

package coding

// Version table.
var vtab = [MaxVersion + 1]version{
`)
	for i := 1; i < len(capacity); i++ {
		var lv [8]int
		for l := 0; l < 4; l++ {
			nblock := eccTable[i][l][0] + eccTable[i][l][1]
			lv[l*2] = nblock
			lv[l*2+1] = capacity[i].ec[l] / nblock
		}
		fmt.Fprintf(w, "\t%d: {%v, %v, [4]level{{%v, %v}, {%v, %v}, {%v, %v}, {%v, %v}}},\n",
			i, align[i], capacity[i].words,
			lv[0], lv[1], lv[2], lv[3], lv[4], lv[5], lv[6], lv[7])
	}
	fmt.Fprintln(w, "}")

	fmt.Fprint(w, "\n// QR Code format bits, indexed by level*8 + mask.\n"+
		"var ftab = [32]uint16{\n")
	for l := 0; l < 4; l++ {
		fmt.Fprint(w, "\t")
		for m := 0; m < 8; m++ {
			fb := uint16(l^1) << 13 // L=01, M=00, Q=11, H=10
			fb |= uint16(m) << 10   // mask
			fb = calcFormat(fb) ^ 0x5412
			fmt.Fprintf(w, "%#06x, ", fb)
		}
		fmt.Fprintf(w, "// %c\n", "LMQH"[l])
	}
	fmt.Fprintln(w, "}")
	w.Flush()
}
