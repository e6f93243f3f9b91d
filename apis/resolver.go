/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package apis

// Resolver turns one client declaration into its descriptor.
// Typical pipeline: alias -> qualifiers/fallbacks/configuration/endpoint -> descriptor.
type Resolver interface {
	// Resolve returns the descriptor for attrs, or an error describing every
	// structural problem found. No partial descriptor is returned on failure.
	Resolve(attrs RawAttributes, cfg Config) (ClientDescriptor, error)
}
