// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package eval measures retrieval relevance against a canned query set.
//
// Each query names the services its top result is allowed to come from. The
// runner executes every query through the searcher, marks it PASS when the
// top result's service is one of the expected services, and reports
// precision at the configured depth with a letter grade.
//
// The default query set covers the common documentation intents: resource
// creation, pricing, troubleshooting, and API usage across the major
// services. Callers with their own corpus can supply their own set.
package eval
