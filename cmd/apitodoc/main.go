/*
 * Copyright (C) 2025 IBM, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 *
 */
package main

import (
	"bytes"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/netobserv/netipv4trie/pkg/api"
)

func pad(indent int) string {
	return strings.Repeat(" ", 4*indent)
}

// iterate writes the documented fields of data, recursing into nested types. Slices, maps and
// pointers are documented by their element type.
func iterate(output io.Writer, data interface{}, indent int) {
	t := reflect.TypeOf(data)
	if t == nil {
		return
	}
	switch t.Kind() {
	case reflect.Slice, reflect.Map:
		iterate(output, reflect.Zero(t.Elem()).Interface(), indent+1)
	case reflect.Ptr:
		// the element is printed by the next call, at this same level
		iterate(output, reflect.Zero(t.Elem()).Interface(), indent)
	case reflect.Struct:
		value := reflect.ValueOf(data)
		for i := 0; i < t.NumField(); i++ {
			writeField(output, t.Field(i), value.Field(i).Interface(), indent)
		}
	}
}

func writeField(output io.Writer, field reflect.StructField, zero interface{}, indent int) {
	name := strings.ReplaceAll(field.Tag.Get(api.TagYaml), ",omitempty", "")
	doc := field.Tag.Get(api.TagDoc)

	if enumName := field.Tag.Get(api.TagEnum); enumName != "" {
		fmt.Fprintf(output, "%s %s: (enum) %s\n", pad(indent+1), name, doc)
		iterate(output, reflect.Zero(api.GetEnumReflectionTypeByFieldName(enumName)).Interface(), indent+1)
		return
	}
	switch {
	case doc == "":
	case strings.HasPrefix(doc, "#"):
		// section title
		fmt.Fprintf(output, "\n%s\n<pre>\n%s %s:\n", doc, pad(indent), name)
		iterate(output, zero, indent+1)
		fmt.Fprint(output, "</pre>")
	default:
		fmt.Fprintf(output, "%s %s: %s\n", pad(indent+1), name, doc)
		iterate(output, zero, indent+1)
	}
}

func main() {
	output := new(bytes.Buffer)
	iterate(output, api.API{}, 0)
	fmt.Print(output)
}
