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
	"fmt"

	// registers the labeler metrics definitions
	_ "github.com/netobserv/netipv4trie/pkg/labeler"
	"github.com/netobserv/netipv4trie/pkg/operational"
)

const header = `
> Note: this file was automatically generated, to update execute "make docs"

# netipv4trie Operational Metrics

Each table below provides documentation for an exported netipv4trie operational metric.
`

func main() {
	fmt.Printf("%s\n%s\n", header, operational.GetDocumentation())
}
