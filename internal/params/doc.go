// Package params collects the property values used to resolve ${...}
// expressions in IronJacamar descriptors.
//
// Values come from several sources, applied lowest priority first:
//
//  1. the process environment (after .env has been loaded by godotenv)
//  2. the properties section of jcagen.yaml
//  3. --properties-file files, in the order given
//  4. -D key=value flags
//
// Properties files ending in .env are parsed with godotenv; any other file
// is read as a Java .properties file.
package params
