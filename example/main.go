package main

import (
	"fmt"
	"log"

	"github.com/felipeoliveiradev/statej/example/components"
	"github.com/felipeoliveiradev/statej/lib/dom"
)

func main() {
	doc, err := dom.ParseDocument(`
		<main>
			<section id="counter"></section>
			<section id="toggle-slot"></section>
			<section id="badge-slot"></section>
		</main>`)
	if err != nil {
		log.Fatal(err)
	}

	counter := components.NewCounter()
	toggle := components.NewThemeToggle()
	badge := components.NewThemeBadge()

	if err := counter.Mount(doc, "#counter"); err != nil {
		log.Fatal(err)
	}
	if err := toggle.Mount(doc, "#toggle-slot"); err != nil {
		log.Fatal(err)
	}
	if err := badge.Mount(doc, "#badge-slot"); err != nil {
		log.Fatal(err)
	}

	// Two clicks at step 1, then raise the step and click again.
	click(doc, "#add")
	click(doc, "#add")
	input(doc, "#step", "5")
	click(doc, "#add")
	fmt.Printf("count: %v\n", counter.Get("count"))

	// The toggle publishes; the badge re-renders on its own.
	click(doc, "#toggle")
	fmt.Printf("badge: %s\n", doc.QuerySelector("#badge").Text())

	// Mutation history holds the pre-change snapshots, oldest first.
	for i, snap := range counter.History() {
		fmt.Printf("history[%d]: %v\n", i, snap)
	}

	// State survives the instance: a fresh counter sharing the storage
	// key picks up where this one left off.
	counter.Destroy()
	restored := components.NewCounter()
	if restored.LoadPersistedState() {
		fmt.Printf("restored count: %v\n", restored.Get("count"))
	}

	fmt.Println(doc.HTML())
}

func click(doc *dom.Document, selector string) {
	fire(doc, selector, "click")
}

func input(doc *dom.Document, selector, value string) {
	el := doc.QuerySelector(selector)
	if el == nil {
		log.Fatalf("no element matches %q", selector)
	}
	el.SetValue(value)
	el.DispatchEvent(dom.NewEvent("input"))
}

func fire(doc *dom.Document, selector, event string) {
	el := doc.QuerySelector(selector)
	if el == nil {
		log.Fatalf("no element matches %q", selector)
	}
	el.DispatchEvent(dom.NewEvent(event))
}
