package bind_test

import (
	"fmt"
	"reflect"

	"map-binder/bind"
	"map-binder/descriptor"
	"map-binder/provider"
)

func Example() {
	ctor, err := descriptor.NewFuncCallable(newPerson, "name", "age")
	if err != nil {
		panic(err)
	}

	desc, err := descriptor.ForStruct(reflect.TypeOf(person{}), ctor)
	if err != nil {
		panic(err)
	}

	source := provider.NewMapValueProvider(map[string]any{
		"name":    "alice",
		"age":     30,
		"country": "NL",
		"typo":    true,
	})

	plan, err := bind.BuildPlan(desc, ctor, source)
	if err != nil {
		panic(err)
	}

	fmt.Println("errors:", plan.HasErrors(), "warnings:", plan.HasWarnings())
	fmt.Println("nonmatching:", plan.NonmatchingProviderEntries())

	out, err := bind.Execute(plan)
	if err != nil {
		panic(err)
	}

	p := out.(*person)
	fmt.Println(p.Name, p.Age, p.Country)

	// Output:
	// errors: false warnings: true
	// nonmatching: [typo]
	// alice 30 NL
}
