package main

import (
	"fmt"
	"strings"
)

func printMenu() {
	fmt.Print(`
Select a request type:
===============================

0. Exit
1. Current date and time
2. Time only (no date)
3. Seconds since epoch
4. Client-to-server delay
5. Round-trip time (RTT)
6. Time without seconds
7. Current year
8. Month and day
9. Seconds since month start
10. Week number of year
11. Daylight savings status
12. Time in another city
13. Measure time lap

`)
}

func printCityMenu() {
	fmt.Print(`
Choose a city from the following list:
=========================================

 1. Doha (Qatar)
 2. Prague (Czech Republic)
 3. New-York (USA)
 4. Berlin (Germany)
 5. UTC (default)

`)
}

func (c *client) readLine() (string, bool) {
	if !c.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(c.in.Text()), true
}

// promptChoice reads a menu selection. Input must be a number of at
// most two digits in 0..13; anything else prints a hint and reports
// no selection.
func (c *client) promptChoice() (int, bool) {
	fmt.Print("Enter your choice (1-13) or 0 to exit: ")
	line, ok := c.readLine()
	if !ok {
		return 0, true // EOF behaves like exit
	}
	if line == "" || len(line) > 2 || !allDigits(line) {
		fmt.Println("Invalid choice. Please enter a number between 0 and 13 (max two digits).")
		return 0, false
	}
	choice := 0
	for _, r := range line {
		choice = choice*10 + int(r-'0')
	}
	if choice > 13 {
		fmt.Println("Invalid choice. Please select a valid option (1-13) or 0 to exit.")
		return 0, false
	}
	return choice, true
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// promptCity asks for a city and normalizes the answer against the
// configured zone table; unrecognized input falls back to "utc".
func (c *client) promptCity() string {
	printCityMenu()
	fmt.Print("Enter your choice (no spaces): ")
	line, ok := c.readLine()
	if !ok {
		return "utc"
	}
	return c.zones.Normalize(line)
}
